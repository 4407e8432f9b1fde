package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mypublisher"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
	"github.com/webshop/storefront/services/checkoutevents"
	"github.com/webshop/storefront/services/gateway"
)

var (
	cartLines = []ItemLine{
		{ProductUID: "product_a", Name: "Product A", PriceInCents: 500, Quantity: 2},
		{ProductUID: "product_b", Name: "Product B", PriceInCents: 300, Quantity: 1},
	}
	homeAddr = Address{
		UID:        "addr-1",
		Label:      "Home",
		Street:     "42 Main street",
		City:       "Springfield",
		State:      "Oregon",
		PostalCode: "97477",
		Country:    "USA",
		Phone:      "555-0100",
	}
	officeAddr = Address{
		UID:        "addr-2",
		Label:      "Office",
		Street:     "1 Work plaza",
		City:       "Springfield",
		State:      "Oregon",
		PostalCode: "97478",
		Country:    "USA",
		Phone:      "555-0101",
	}
)

func TestCheckoutEntry(t *testing.T) {

	t.Run("Cart checkout computes totals and auto-selects first address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.cartFetcher.EXPECT().FetchCart(gomock.Any(), f.token).Return(cartLines, nil)
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr, officeAddr}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:   "checkout-1",
			ShopperUID:    "shopper-1",
			Source:        "cart",
			AmountInCents: 1300,
			Currency:      "EUR",
		})

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateReady, got.State)
		assert.Len(t, got.Items, 2)
		assert.Equal(t, int64(1300), got.TotalPayableInCents)
		assert.Equal(t, "addr-1", got.SelectedAddressUID)
	})

	t.Run("Buy-now entry never fetches the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no FetchCart expectation, a call would fail the test
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout?id=product_x&name=Product+X&price=16900&quantity=1&image=x.jpg", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "buy-now", got.Source)
		assert.Len(t, got.Items, 1)
		assert.Equal(t, "product_x", got.Items[0].ProductUID)
		assert.Equal(t, int64(16900), got.TotalPayableInCents)
	})

	t.Run("Malformed buy-now numerics fall back to the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.cartFetcher.EXPECT().FetchCart(gomock.Any(), f.token).Return(cartLines, nil)
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout?id=product_x&name=Product+X&price=notanumber&quantity=1", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "cart", got.Source)
		assert.Len(t, got.Items, 2)
	})

	t.Run("Cart fetch failure yields an empty ready state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.cartFetcher.EXPECT().FetchCart(gomock.Any(), f.token).Return(nil, fmt.Errorf("connection refused"))
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateReady, got.State)
		assert.Empty(t, got.Items)
		assert.NotEmpty(t, got.ItemsError)
	})

	t.Run("Address fetch failure keeps checkout usable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.cartFetcher.EXPECT().FetchCart(gomock.Any(), f.token).Return(cartLines, nil)
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return(nil, fmt.Errorf("connection refused"))
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateReady, got.State)
		assert.Empty(t, got.Addresses)
		assert.NotEmpty(t, got.AddressesError)
		assert.Empty(t, got.SelectedAddressUID)
	})

	t.Run("Delivery charge and discount are applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 4000, 100)

		// given
		f.uuider.EXPECT().Create().Return("checkout-1")
		f.cartFetcher.EXPECT().FetchCart(gomock.Any(), f.token).Return(cartLines, nil)
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, int64(1300), got.SubtotalInCents)
		assert.Equal(t, int64(5200), got.TotalPayableInCents)
	})
}

func TestSubmission(t *testing.T) {

	t.Run("Cash-on-delivery submit yields exactly one order call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())
		f.orderPlacer.EXPECT().PlaceOrder(gomock.Any(), f.token, OrderRequest{
			Items:               cartLines,
			ShippingAddressText: "Home, 42 Main street, Springfield, Oregon - 97477, USA",
			PaymentMethod:       "COD",
			TotalAmountInCents:  1300,
		}).Return("order-9", nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:    "checkout-1",
			ShopperUID:     "shopper-1",
			Source:         "cart",
			OrderUID:       "order-9",
			PaymentMethod:  PaymentMethodCOD,
			CheckoutStatus: checkoutevents.CheckoutStatusSuccess,
		})

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateSucceeded, got.State)
		assert.Equal(t, "order-9", got.OrderUID)

		// the draft is discarded
		session, _, _ := f.store.Get(f.ctx, "checkout-1")
		assert.Empty(t, session.Items)
	})

	t.Run("Submit without address stays ready without network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.Addresses = []Address{}
		session.SelectedAddressUID = ""
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), ReasonNoAddress)
		stored, _, _ := f.store.Get(f.ctx, "checkout-1")
		assert.Equal(t, StateReady, stored.State)
	})

	t.Run("Submit with empty cart stays ready without network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.Items = []ItemLine{}
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), ReasonCartEmpty)
	})

	t.Run("Submit while a submission is in flight is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no PlaceOrder expectation, a call would fail the test
		session := readySession()
		session.State = StateSubmitting
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateSubmitting, got.State)
	})

	t.Run("Submit after success is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.State = StateSucceeded
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Order collaborator failure preserves selections for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())
		f.orderPlacer.EXPECT().PlaceOrder(gomock.Any(), f.token, gomock.Any()).Return("", fmt.Errorf("order service unavailable"))
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, got.State)
		assert.Contains(t, got.FailureReason, "unavailable")
		assert.Equal(t, "addr-1", got.SelectedAddressUID)
		assert.Len(t, got.Items, 2)

		// retrying re-enters submitting
		f.orderPlacer.EXPECT().PlaceOrder(gomock.Any(), f.token, gomock.Any()).Return("order-9", nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())
		response = f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")
		assert.Equal(t, 200, response.Code)
	})
}

func TestGatewayFlow(t *testing.T) {

	t.Run("Gateway submit starts the handshake", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.PaymentMethod = PaymentMethodGateway
		f.store.Put(f.ctx, "checkout-1", session)
		f.gw.EXPECT().CreateOrder(gomock.Any(), int64(1300), "EUR", "checkout-1").Return(gateway.GatewayOrder{
			UID:           "gw-order-1",
			ProviderName:  "stripe",
			AmountInCents: 1300,
		}, nil)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/submit", "")

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateSubmitting, got.State)
		assert.Equal(t, "gw-order-1", got.GatewayOrderUID)
	})

	t.Run("Dismissed handshake fails without any order call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no PlaceOrder/VerifyPayment expectation
		session := submittingGatewaySession()
		f.store.Put(f.ctx, "checkout-1", session)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CheckoutUID:    "checkout-1",
			ShopperUID:     "shopper-1",
			Source:         "cart",
			PaymentMethod:  PaymentMethodGateway,
			CheckoutStatus: checkoutevents.CheckoutStatusCancelled,
			StatusDetails:  ReasonPaymentCancelled,
		})

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm", `{"cancelled":true}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, got.State)
		assert.Equal(t, ReasonPaymentCancelled, got.FailureReason)
	})

	t.Run("Failed verification is surfaced distinctly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", submittingGatewaySession())
		f.gw.EXPECT().PaymentStatus(gomock.Any(), "pay-1").Return(gateway.PaymentStatusPaid, nil)
		f.orderPlacer.EXPECT().VerifyPayment(gomock.Any(), f.token, VerifyRequest{
			Order: OrderRequest{
				Items:               cartLines,
				ShippingAddressText: "Home, 42 Main street, Springfield, Oregon - 97477, USA",
				PaymentMethod:       "ONLINE",
				TotalAmountInCents:  1300,
			},
			GatewayOrderUID: "gw-order-1",
			PaymentUID:      "pay-1",
			Signature:       "sig-1",
		}).Return(false, "", nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm",
			`{"gatewayOrderUID":"gw-order-1","paymentUID":"pay-1","signature":"sig-1"}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, got.State)
		assert.Equal(t, ReasonVerificationFailed, got.FailureReason)
	})

	t.Run("Verified payment completes the checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", submittingGatewaySession())
		f.gw.EXPECT().PaymentStatus(gomock.Any(), "pay-1").Return(gateway.PaymentStatusPaid, nil)
		f.orderPlacer.EXPECT().VerifyPayment(gomock.Any(), f.token, gomock.Any()).Return(true, "order-9", nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm",
			`{"gatewayOrderUID":"gw-order-1","paymentUID":"pay-1","signature":"sig-1"}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateSucceeded, got.State)
		assert.Equal(t, "order-9", got.OrderUID)
	})

	t.Run("Confirm quoting another gateway order is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no PaymentStatus/VerifyPayment expectation, a replayed
		// triple from another checkout must not reach either
		f.store.Put(f.ctx, "checkout-1", submittingGatewaySession())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm",
			`{"gatewayOrderUID":"gw-order-other","paymentUID":"pay-other","signature":"sig-other"}`)

		// then
		assert.Equal(t, 400, response.Code)
		stored, _, _ := f.store.Get(f.ctx, "checkout-1")
		assert.Equal(t, StateSubmitting, stored.State)
		assert.Equal(t, "gw-order-1", stored.GatewayOrderUID)
	})

	t.Run("Unpaid provider status fails verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no VerifyPayment expectation, an unpaid payment must not
		// reach the order service
		f.store.Put(f.ctx, "checkout-1", submittingGatewaySession())
		f.gw.EXPECT().PaymentStatus(gomock.Any(), "pay-1").Return(gateway.PaymentStatusOpen, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm",
			`{"gatewayOrderUID":"gw-order-1","paymentUID":"pay-1","signature":"sig-1"}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, got.State)
		assert.Equal(t, ReasonVerificationFailed, got.FailureReason)
	})

	t.Run("Confirm without a payment in progress is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/confirm",
			`{"gatewayOrderUID":"gw-order-1","paymentUID":"pay-1","signature":"sig-1"}`)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

func TestAddressCreation(t *testing.T) {

	validFields := `{"label":"Office","street":"1 Work plaza","city":"Springfield","state":"Oregon","postalCode":"97478","country":"USA","phone":"555-0101"}`

	t.Run("Missing fields rejected without contacting the collaborator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given: no AddressKeeper expectations
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/address",
			`{"label":"Office","street":"1 Work plaza"}`)

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), "fill all required fields")
	})

	t.Run("Created address becomes the selection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())
		created := f.addressKeeper.EXPECT().CreateAddress(gomock.Any(), f.token, AddressFields{
			Label: "Office", Street: "1 Work plaza", City: "Springfield", State: "Oregon",
			PostalCode: "97478", Country: "USA", Phone: "555-0101",
		}).Return(nil)
		// the refetch must not start before the create acknowledged
		f.addressKeeper.EXPECT().ListAddresses(gomock.Any(), f.token).Return([]Address{homeAddr, officeAddr}, nil).After(created)

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/address", validFields)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "addr-2", got.SelectedAddressUID)
		assert.Len(t, got.Addresses, 2)
	})

	t.Run("Create failure leaves the session untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())
		f.addressKeeper.EXPECT().CreateAddress(gomock.Any(), f.token, gomock.Any()).Return(fmt.Errorf("connection refused"))

		// when
		response := f.doRequest(http.MethodPost, "/api/checkout/checkout-1/address", validFields)

		// then
		assert.Equal(t, 502, response.Code)
		stored, _, _ := f.store.Get(f.ctx, "checkout-1")
		assert.Equal(t, "addr-1", stored.SelectedAddressUID)
		assert.Len(t, stored.Addresses, 1)
	})
}

func TestSelections(t *testing.T) {

	t.Run("Select another address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.Addresses = []Address{homeAddr, officeAddr}
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/address", `{"addressUID":"addr-2"}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, "addr-2", got.SelectedAddressUID)
	})

	t.Run("Select unknown address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/address", `{"addressUID":"addr-unknown"}`)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Select payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/payment-method", `{"paymentMethod":"GATEWAY"}`)

		// then
		assert.Equal(t, 200, response.Code)
		got := CheckoutSession{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Equal(t, PaymentMethodGateway, got.PaymentMethod)
	})

	t.Run("Select unsupported payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/payment-method", `{"paymentMethod":"BARTER"}`)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("No changes while submitting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.State = StateSubmitting
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		response := f.doRequest(http.MethodPut, "/api/checkout/checkout-1/payment-method", `{"paymentMethod":"GATEWAY"}`)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

func TestStaleResponses(t *testing.T) {

	t.Run("Results of an older epoch are discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		session := readySession()
		session.Epoch = 2
		session.Items = []ItemLine{}
		f.store.Put(f.ctx, "checkout-1", session)

		// when
		err := f.svc.applyItems(f.ctx, "checkout-1", 1, cartLines, nil)

		// then
		assert.NoError(t, err)
		stored, _, _ := f.store.Get(f.ctx, "checkout-1")
		assert.Empty(t, stored.Items)
	})

	t.Run("Results for an abandoned checkout are discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, 0, 0)

		// given
		f.store.Put(f.ctx, "checkout-1", readySession())

		// when
		response := f.doRequest(http.MethodDelete, "/api/checkout/checkout-1", "")
		assert.Equal(t, 200, response.Code)
		err := f.svc.applyItems(f.ctx, "checkout-1", 1, cartLines, nil)

		// then
		assert.NoError(t, err)
		_, exists, _ := f.store.Get(f.ctx, "checkout-1")
		assert.False(t, exists)
	})
}

func readySession() CheckoutSession {
	return CheckoutSession{
		UID:                 "checkout-1",
		ShopperUID:          "shopper-1",
		State:               StateReady,
		Epoch:               1,
		Source:              "cart",
		Items:               cartLines,
		ItemsLoaded:         true,
		Addresses:           []Address{homeAddr},
		AddressesLoaded:     true,
		SelectedAddressUID:  "addr-1",
		PaymentMethod:       PaymentMethodCOD,
		Currency:            defaultCurrency,
		SubtotalInCents:     1300,
		TotalPayableInCents: 1300,
		CreatedAt:           mytime.ExampleTime,
	}
}

func submittingGatewaySession() CheckoutSession {
	session := readySession()
	session.State = StateSubmitting
	session.PaymentMethod = PaymentMethodGateway
	session.GatewayOrderUID = "gw-order-1"
	return session
}

type fixture struct {
	ctx           context.Context
	router        *mux.Router
	store         mystore.Store[CheckoutSession]
	cartFetcher   *MockCartFetcher
	addressKeeper *MockAddressKeeper
	orderPlacer   *MockOrderPlacer
	gw            *gateway.MockGateway
	publisher     *mypublisher.MockPublisher
	uuider        *myuuid.MockUUIDer
	svc           *service
	token         string
}

func (f fixture) doRequest(method string, url string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+f.token)
	response := httptest.NewRecorder()
	f.router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller, deliveryChargeInCents int64, discountInCents int64) fixture {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[CheckoutSession](c)
	cartFetcher := NewMockCartFetcher(ctrl)
	addressKeeper := NewMockAddressKeeper(ctrl)
	orderPlacer := NewMockOrderPlacer(ctrl)
	gw := gateway.NewMockGateway(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	auth := myauth.New("my-test-secret", mytime.RealNower{})

	token, err := auth.IssueToken("shopper-1", myauth.RoleShopper, time.Hour)
	assert.NoError(t, err)

	sut := NewService(storer, cartFetcher, addressKeeper, orderPlacer, gw, publisher,
		deliveryChargeInCents, discountInCents, nower, uuider, auth)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return fixture{
		ctx:           c,
		router:        router,
		store:         storer,
		cartFetcher:   cartFetcher,
		addressKeeper: addressKeeper,
		orderPlacer:   orderPlacer,
		gw:            gw,
		publisher:     publisher,
		uuider:        uuider,
		svc:           sut.service,
		token:         token,
	}
}
