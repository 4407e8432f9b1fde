package order

import (
	"context"
	"fmt"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/services/gateway"
	"github.com/webshop/storefront/services/order/orderevents"
)

func (s *service) placeOrder(c context.Context, shopperUID string, req PlaceOrderRequest) (Order, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return Order{}, myerrors.NewInvalidInputError(err)
	}
	if req.PaymentMethod != PaymentMethodCOD {
		return Order{}, myerrors.NewInvalidInputError(fmt.Errorf("online orders must come in via payment verification"))
	}

	return s.storeOrder(c, newOrder(s.uuider.Create(), shopperUID, req, OrderStatusPlaced, s.nower))
}

// verifyAndPlaceOrder checks the gateway signature of a completed online
// payment. A valid signature results in a paid order, a bad one in a
// rejected order so the attempt stays visible in the order history.
func (s *service) verifyAndPlaceOrder(c context.Context, shopperUID string, req VerifyPaymentRequest) (Order, bool, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return Order{}, false, myerrors.NewInvalidInputError(err)
	}

	order := newOrder(s.uuider.Create(), shopperUID, req.Order, OrderStatusPaid, s.nower)
	order.PaymentMethod = PaymentMethodOnline
	order.GatewayOrderUID = req.GatewayOrderUID
	order.PaymentUID = req.PaymentUID

	if !gateway.VerifySignature(s.signingSecret, req.GatewayOrderUID, req.PaymentUID, req.Signature) {
		s.logger.Log(c, order.UID, mylog.SeverityWarn, "Signature mismatch on payment %s of gateway-order %s", req.PaymentUID, req.GatewayOrderUID)

		order.Status = OrderStatusVerificationFailed
		order, err = s.storeOrder(c, order)
		if err != nil {
			return Order{}, false, err
		}

		return order, false, nil
	}

	order, err = s.storeOrder(c, order)
	if err != nil {
		return Order{}, false, err
	}

	return order, true, nil
}

func (s *service) storeOrder(c context.Context, order Order) (Order, error) {
	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Store order %s (%s, %d cents) of shopper %s", order.UID, order.Status, order.TotalAmountInCents, order.ShopperUID)

	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		err := s.orderStore.Put(c, order.UID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:      order.UID,
			ShopperUID:    order.ShopperUID,
			PaymentMethod: order.PaymentMethod,
			AmountInCents: order.TotalAmountInCents,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func (s *service) listOrders(c context.Context, shopperUID string) ([]Order, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch orders of shopper %s", shopperUID)

	orders, err := s.orderStore.Query(c, []mystore.Filter{
		{Field: "ShopperUID", Compare: "=", Value: shopperUID},
	}, "-CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return orders, nil
}

func (s *service) getOrder(c context.Context, shopperUID string, orderUID string) (Order, error) {
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Fetch details of order uid %s", orderUID)

	order, found, err := s.orderStore.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	if !found || order.ShopperUID != shopperUID {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
	}

	return order, nil
}

func newOrder(uid string, shopperUID string, req PlaceOrderRequest, status OrderStatus, nower mytime.Nower) Order {
	return Order{
		UID:                 uid,
		ShopperUID:          shopperUID,
		Items:               req.Items,
		ShippingAddressText: req.ShippingAddressText,
		PaymentMethod:       req.PaymentMethod,
		Status:              status,
		TotalAmountInCents:  req.TotalAmountInCents,
		CreatedAt:           nower.Now(),
	}
}
