package checkout

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/services/checkoutevents"
	"github.com/webshop/storefront/services/gateway"
)

// startCheckout builds a fresh order draft. The item set and the address
// book are fetched concurrently: each fetch writes its own slice of session
// state, guarded by the epoch so results of an abandoned session are
// discarded silently.
func (s *service) startCheckout(c context.Context, shopperUID string, bearerToken string, buyNow BuyNowParams) (CheckoutSession, error) {
	checkoutUID := s.uuider.Create()
	now := s.nower.Now()

	session := CheckoutSession{
		UID:                   checkoutUID,
		ShopperUID:            shopperUID,
		State:                 StateLoading,
		Epoch:                 1,
		Source:                "cart",
		Items:                 []ItemLine{},
		Addresses:             []Address{},
		PaymentMethod:         PaymentMethodCOD,
		Currency:              defaultCurrency,
		DeliveryChargeInCents: s.deliveryChargeInCents,
		DiscountInCents:       s.discountInCents,
		CreatedAt:             now,
	}

	if line, ok := buyNow.toLine(); ok {
		// A well-formed buy-now entry bypasses the persisted cart entirely
		session.Source = "buy-now"
		session.Items = []ItemLine{line}
		session.ItemsLoaded = true
		session.recomputeTotals()
	}

	s.logger.Log(c, checkoutUID, mylog.SeverityInfo, "Start %s checkout %s for shopper %s", session.Source, checkoutUID, shopperUID)

	err := s.sessionStore.Put(c, checkoutUID, session)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}

	var wg sync.WaitGroup
	if !session.ItemsLoaded {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, fetchErr := s.fetchItems(c, bearerToken)
			err := s.applyItems(c, checkoutUID, session.Epoch, items, fetchErr)
			if err != nil {
				s.logger.Log(c, checkoutUID, mylog.SeverityWarn, "Error applying cart of checkout %s: %s", checkoutUID, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		addresses, fetchErr := s.fetchAddresses(c, bearerToken)
		err := s.applyAddresses(c, checkoutUID, session.Epoch, addresses, fetchErr)
		if err != nil {
			s.logger.Log(c, checkoutUID, mylog.SeverityWarn, "Error applying addresses of checkout %s: %s", checkoutUID, err)
		}
	}()
	wg.Wait()

	session, found, err := s.sessionStore.Get(c, checkoutUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}
	if !found {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("checkout with uid %s not found", checkoutUID))
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		CheckoutUID:   checkoutUID,
		ShopperUID:    shopperUID,
		Source:        session.Source,
		AmountInCents: session.TotalPayableInCents,
		Currency:      session.Currency,
	})
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}

	return session, nil
}

func (s *service) fetchItems(c context.Context, bearerToken string) ([]ItemLine, error) {
	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()
	return s.cartFetcher.FetchCart(ctx, bearerToken)
}

func (s *service) fetchAddresses(c context.Context, bearerToken string) ([]Address, error) {
	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()
	return s.addressKeeper.ListAddresses(ctx, bearerToken)
}

// applyItems writes the outcome of the cart fetch. A failed fetch leaves an
// empty item set plus a recorded non-fatal error: checkout renders an
// empty-cart state, it does not crash.
func (s *service) applyItems(c context.Context, checkoutUID string, epoch int, items []ItemLine, fetchErr error) error {
	now := s.nower.Now()

	return s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, found, err := s.sessionStore.Get(c, checkoutUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || session.Epoch != epoch {
			// stale response, discard
			return nil
		}

		session.ItemsLoaded = true
		if fetchErr != nil {
			session.Items = []ItemLine{}
			session.ItemsError = fetchErr.Error()
		} else {
			session.Items = items
		}
		session.recomputeTotals()
		session.maybeReady()
		session.LastModified = &now

		return s.sessionStore.Put(c, checkoutUID, session)
	})
}

// applyAddresses writes the outcome of the address fetch and re-applies the
// selection policy.
func (s *service) applyAddresses(c context.Context, checkoutUID string, epoch int, addresses []Address, fetchErr error) error {
	now := s.nower.Now()

	return s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		session, found, err := s.sessionStore.Get(c, checkoutUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || session.Epoch != epoch {
			// stale response, discard
			return nil
		}

		session.AddressesLoaded = true
		if fetchErr != nil {
			session.Addresses = []Address{}
			session.AddressesError = fetchErr.Error()
		} else {
			session.Addresses = addresses
		}
		session.applySelectionPolicy()
		session.maybeReady()
		session.LastModified = &now

		return s.sessionStore.Put(c, checkoutUID, session)
	})
}

func (s *CheckoutSession) maybeReady() {
	if s.State == StateLoading && s.ItemsLoaded && s.AddressesLoaded {
		s.State = StateReady
	}
}

// applySelectionPolicy keeps an existing valid selection; a missing or
// stale one falls back to the first address in server order.
func (s *CheckoutSession) applySelectionPolicy() {
	if s.selectedAddress() != nil {
		return
	}
	s.SelectedAddressUID = ""
	if len(s.Addresses) > 0 {
		s.SelectedAddressUID = s.Addresses[0].UID
	}
}

func (s *service) getCheckout(c context.Context, shopperUID string, checkoutUID string) (CheckoutSession, error) {
	session, found, err := s.sessionStore.Get(c, checkoutUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}
	if !found || session.ShopperUID != shopperUID {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("checkout with uid %s not found", checkoutUID))
	}

	return session, nil
}

func (s *service) selectAddress(c context.Context, shopperUID string, checkoutUID string, addressUID string) (CheckoutSession, error) {
	return s.mutateReadySession(c, shopperUID, checkoutUID, func(session *CheckoutSession) error {
		for _, addr := range session.Addresses {
			if addr.UID == addressUID {
				session.SelectedAddressUID = addressUID
				return nil
			}
		}
		return myerrors.NewNotFoundError(fmt.Errorf("address with uid %s not found", addressUID))
	})
}

func (s *service) selectPaymentMethod(c context.Context, shopperUID string, checkoutUID string, paymentMethod string) (CheckoutSession, error) {
	if paymentMethod != PaymentMethodCOD && paymentMethod != PaymentMethodGateway {
		return CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("unsupported payment method %q", paymentMethod))
	}

	return s.mutateReadySession(c, shopperUID, checkoutUID, func(session *CheckoutSession) error {
		session.PaymentMethod = paymentMethod
		return nil
	})
}

// mutateReadySession applies a selection change. Selections can only change
// while no submission is in flight; a failed session flips back to ready so
// the shopper can retry with adjusted choices.
func (s *service) mutateReadySession(c context.Context, shopperUID string, checkoutUID string, mutate func(session *CheckoutSession) error) (CheckoutSession, error) {
	now := s.nower.Now()

	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getCheckout(c, shopperUID, checkoutUID)
		if err != nil {
			return err
		}
		if session.State != StateReady && session.State != StateFailed {
			return myerrors.NewInvalidInputError(fmt.Errorf("checkout %s does not accept changes while %s", checkoutUID, session.State))
		}

		err = mutate(&session)
		if err != nil {
			return err
		}

		if session.State == StateFailed {
			session.State = StateReady
			session.FailureReason = ""
		}
		session.LastModified = &now

		err = s.sessionStore.Put(c, checkoutUID, session)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// addAddress validates locally, then runs the strictly ordered chain:
// create at the collaborator, refetch the list, select the newest entry.
// A collaborator failure leaves the session untouched so the entered form
// can be retried as-is.
func (s *service) addAddress(c context.Context, shopperUID string, bearerToken string, checkoutUID string, fields AddressFields) (CheckoutSession, error) {
	if fields.Label == "" || fields.Street == "" || fields.City == "" || fields.State == "" ||
		fields.PostalCode == "" || fields.Country == "" || fields.Phone == "" {
		return CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("fill all required fields"))
	}

	session, err := s.getCheckout(c, shopperUID, checkoutUID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if session.State != StateReady && session.State != StateFailed {
		return CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s does not accept changes while %s", checkoutUID, session.State))
	}

	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()

	err = s.addressKeeper.CreateAddress(ctx, bearerToken, fields)
	if err != nil {
		return CheckoutSession{}, myerrors.NewCollaboratorError(err)
	}

	// The refetch must not start before the create acknowledged, or a
	// stale list gets selected from.
	addresses, err := s.addressKeeper.ListAddresses(ctx, bearerToken)
	if err != nil {
		return CheckoutSession{}, myerrors.NewCollaboratorError(err)
	}

	return s.mutateReadySession(c, shopperUID, checkoutUID, func(session *CheckoutSession) error {
		session.Addresses = addresses
		session.AddressesError = ""
		if len(addresses) > 0 {
			session.SelectedAddressUID = addresses[len(addresses)-1].UID
		}
		return nil
	})
}

// submit drives one submission attempt. The session is claimed inside a
// transaction so repeated clicks cannot put two submissions in flight.
func (s *service) submit(c context.Context, shopperUID string, bearerToken string, checkoutUID string) (CheckoutSession, error) {
	now := s.nower.Now()

	var session CheckoutSession
	claimed := false
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getCheckout(c, shopperUID, checkoutUID)
		if err != nil {
			return err
		}

		switch session.State {
		case StateSubmitting:
			// already in flight, ignore this click
			return nil
		case StateSucceeded:
			return myerrors.NewInvalidInputError(fmt.Errorf("checkout %s already completed", checkoutUID))
		case StateLoading:
			return myerrors.NewInvalidInputError(fmt.Errorf("checkout %s is still loading", checkoutUID))
		}

		// re-validate the ready preconditions before any network call
		if len(session.Items) == 0 {
			return myerrors.NewInvalidInputError(fmt.Errorf("%s", ReasonCartEmpty))
		}
		if session.selectedAddress() == nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("%s", ReasonNoAddress))
		}

		session.State = StateSubmitting
		session.FailureReason = ""
		session.LastModified = &now

		err = s.sessionStore.Put(c, checkoutUID, session)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		claimed = true
		return nil
	})
	if err != nil {
		return CheckoutSession{}, err
	}
	if !claimed {
		return session, nil
	}

	if session.PaymentMethod == PaymentMethodGateway {
		return s.startGatewayHandshake(c, session)
	}

	return s.submitCashOnDelivery(c, bearerToken, session)
}

func (s *service) submitCashOnDelivery(c context.Context, bearerToken string, session CheckoutSession) (CheckoutSession, error) {
	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Submit cash-on-delivery order for checkout %s (%d cents)", session.UID, session.TotalPayableInCents)

	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()

	orderUID, err := s.orderPlacer.PlaceOrder(ctx, bearerToken, s.assembleOrderPayload(session))
	if err != nil {
		return s.finishFailed(c, session.UID, err.Error(), checkoutevents.CheckoutStatusFailed)
	}

	return s.finishSucceeded(c, session.UID, orderUID)
}

// startGatewayHandshake registers the amount with the payment provider and
// leaves the session in submitting: the shopper still has to complete the
// client-side payment, reported back through the confirm endpoint.
func (s *service) startGatewayHandshake(c context.Context, session CheckoutSession) (CheckoutSession, error) {
	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Create gateway order for checkout %s (%d cents)", session.UID, session.TotalPayableInCents)

	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()

	gatewayOrder, err := s.gw.CreateOrder(ctx, session.TotalPayableInCents, session.Currency, session.UID)
	if err != nil {
		return s.finishFailed(c, session.UID, err.Error(), checkoutevents.CheckoutStatusFailed)
	}

	now := s.nower.Now()
	err = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		session, err = s.getCheckout(c, session.ShopperUID, session.UID)
		if err != nil {
			return err
		}
		session.GatewayOrderUID = gatewayOrder.UID
		session.LastModified = &now

		return s.sessionStore.Put(c, session.UID, session)
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// confirm processes the outcome of the gateway's client-side handshake.
func (s *service) confirm(c context.Context, shopperUID string, bearerToken string, checkoutUID string, req ConfirmRequest) (CheckoutSession, error) {
	session, err := s.getCheckout(c, shopperUID, checkoutUID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if session.State != StateSubmitting || session.GatewayOrderUID == "" {
		return CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("checkout %s has no payment in progress", checkoutUID))
	}

	if req.Cancelled {
		// dismissed handshake: no order call of any kind
		return s.finishFailed(c, checkoutUID, ReasonPaymentCancelled, checkoutevents.CheckoutStatusCancelled)
	}

	// The confirmation must quote the gateway order this session created:
	// a triple replayed from another checkout must not complete this one.
	if req.GatewayOrderUID != session.GatewayOrderUID {
		return CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("confirmation does not match the payment in progress for checkout %s", checkoutUID))
	}

	ctx, cancel := context.WithTimeout(c, collaboratorTimeout)
	defer cancel()

	// Ask the provider itself before trusting the client-side outcome.
	status, err := s.gw.PaymentStatus(ctx, req.PaymentUID)
	if err != nil {
		return s.finishFailed(c, checkoutUID, err.Error(), checkoutevents.CheckoutStatusFailed)
	}
	if status != gateway.PaymentStatusPaid {
		return s.finishFailed(c, checkoutUID, ReasonVerificationFailed, checkoutevents.CheckoutStatusVerificationFailed)
	}

	payload := s.assembleOrderPayload(session)
	verified, orderUID, err := s.orderPlacer.VerifyPayment(ctx, bearerToken, VerifyRequest{
		Order:           payload,
		GatewayOrderUID: req.GatewayOrderUID,
		PaymentUID:      req.PaymentUID,
		Signature:       req.Signature,
	})
	if err != nil {
		return s.finishFailed(c, checkoutUID, err.Error(), checkoutevents.CheckoutStatusFailed)
	}
	if !verified {
		return s.finishFailed(c, checkoutUID, ReasonVerificationFailed, checkoutevents.CheckoutStatusVerificationFailed)
	}

	return s.finishSucceeded(c, checkoutUID, orderUID)
}

// abandon discards the draft. The record is removed, so responses of still
// pending fetches find nothing to apply to.
func (s *service) abandon(c context.Context, shopperUID string, checkoutUID string) error {
	_, err := s.getCheckout(c, shopperUID, checkoutUID)
	if err != nil {
		return err
	}

	s.logger.Log(c, checkoutUID, mylog.SeverityInfo, "Abandon checkout %s", checkoutUID)

	err = s.sessionStore.Delete(c, checkoutUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

func (s *service) assembleOrderPayload(session CheckoutSession) OrderRequest {
	paymentMethod := "COD"
	if session.PaymentMethod == PaymentMethodGateway {
		paymentMethod = "ONLINE"
	}

	return OrderRequest{
		Items:               session.Items,
		ShippingAddressText: session.selectedAddress().Text(),
		PaymentMethod:       paymentMethod,
		TotalAmountInCents:  session.TotalPayableInCents,
	}
}

// finishFailed is non-terminal: the shopper may adjust selections and retry.
// All ready-state selections stay untouched.
func (s *service) finishFailed(c context.Context, checkoutUID string, reason string, status checkoutevents.CheckoutStatus) (CheckoutSession, error) {
	s.logger.Log(c, checkoutUID, mylog.SeverityWarn, "Checkout %s failed: %s", checkoutUID, reason)

	return s.finish(c, checkoutUID, func(session *CheckoutSession) {
		session.State = StateFailed
		session.FailureReason = reason
		session.GatewayOrderUID = ""
	}, status)
}

// finishSucceeded is terminal: the order uid stays exposed for navigation,
// the draft itself is discarded.
func (s *service) finishSucceeded(c context.Context, checkoutUID string, orderUID string) (CheckoutSession, error) {
	s.logger.Log(c, checkoutUID, mylog.SeverityInfo, "Checkout %s completed with order %s", checkoutUID, orderUID)

	return s.finish(c, checkoutUID, func(session *CheckoutSession) {
		session.State = StateSucceeded
		session.OrderUID = orderUID
		session.Items = []ItemLine{}
		session.Addresses = []Address{}
		session.Epoch++
	}, checkoutevents.CheckoutStatusSuccess)
}

func (s *service) finish(c context.Context, checkoutUID string, apply func(session *CheckoutSession), status checkoutevents.CheckoutStatus) (CheckoutSession, error) {
	now := s.nower.Now()

	var session CheckoutSession
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		session, found, err = s.sessionStore.Get(c, checkoutUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout with uid %s not found", checkoutUID))
		}

		apply(&session)
		session.LastModified = &now

		err = s.sessionStore.Put(c, checkoutUID, session)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:    session.UID,
			ShopperUID:     session.ShopperUID,
			Source:         session.Source,
			OrderUID:       session.OrderUID,
			PaymentMethod:  session.PaymentMethod,
			CheckoutStatus: status,
			StatusDetails:  session.FailureReason,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return CheckoutSession{}, err
	}

	return session, nil
}

// toLine synthesizes the single buy-now line. Malformed numerics mean the
// buy-now parameters are treated as absent.
func (p BuyNowParams) toLine() (ItemLine, bool) {
	if p.ProductUID == "" {
		return ItemLine{}, false
	}

	price, err := strconv.ParseInt(p.Price, 10, 64)
	if err != nil || price <= 0 {
		return ItemLine{}, false
	}
	quantity, err := strconv.Atoi(p.Quantity)
	if err != nil || quantity <= 0 {
		return ItemLine{}, false
	}

	return ItemLine{
		ProductUID:   p.ProductUID,
		Name:         p.Name,
		ImageURL:     p.ImageURL,
		PriceInCents: price,
		Quantity:     quantity,
	}, true
}
