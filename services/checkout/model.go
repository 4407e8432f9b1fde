package checkout

import (
	"fmt"
	"time"
)

type CheckoutState string

const (
	StateLoading    CheckoutState = "loading"
	StateReady      CheckoutState = "ready"
	StateSubmitting CheckoutState = "submitting"
	StateSucceeded  CheckoutState = "succeeded"
	StateFailed     CheckoutState = "failed"
)

const (
	PaymentMethodCOD     = "COD"
	PaymentMethodGateway = "GATEWAY"
)

// Failure reasons a session can end up with. Verification failures are kept
// distinct from cancellations: money may have moved without a confirmed
// order, which needs different guidance towards the shopper.
const (
	ReasonCartEmpty          = "cart is empty"
	ReasonNoAddress          = "select a delivery address"
	ReasonPaymentCancelled   = "payment cancelled"
	ReasonVerificationFailed = "payment could not be verified, contact support"
)

// A CheckoutSession is the session-scoped order draft: it is rebuilt each
// time checkout is entered and discarded once an order came out of it.
type CheckoutSession struct {
	UID        string        `json:"uid"`
	ShopperUID string        `json:"-"`
	State      CheckoutState `json:"state"`

	// Epoch guards against stale collaborator responses: results fetched
	// for an older epoch are discarded silently.
	Epoch int `json:"-"`

	Source string `json:"source"` // "cart" or "buy-now"

	Items       []ItemLine `json:"items"`
	ItemsLoaded bool       `json:"-"`
	ItemsError  string     `json:"itemsError,omitempty"`

	Addresses       []Address `json:"addresses"`
	AddressesLoaded bool      `json:"-"`
	AddressesError  string    `json:"addressesError,omitempty"`

	SelectedAddressUID string `json:"selectedAddress,omitempty"`
	PaymentMethod      string `json:"paymentMethod"`

	Currency              string `json:"currency"`
	SubtotalInCents       int64  `json:"subtotal"`
	DeliveryChargeInCents int64  `json:"deliveryCharge"`
	DiscountInCents       int64  `json:"discount"`
	TotalPayableInCents   int64  `json:"totalPayable"`

	GatewayOrderUID string `json:"gatewayOrderUID,omitempty"`
	OrderUID        string `json:"orderId,omitempty"`
	FailureReason   string `json:"failureReason,omitempty"`

	CreatedAt    time.Time  `json:"-"`
	LastModified *time.Time `json:"-"`
}

type ItemLine struct {
	ProductUID   string `json:"product"`
	Name         string `json:"name"`
	ImageURL     string `json:"image"`
	PriceInCents int64  `json:"price"`
	Quantity     int    `json:"quantity"`
}

type Address struct {
	UID        string `json:"uid"`
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Text renders the address the way it is stored on the order.
func (a Address) Text() string {
	return fmt.Sprintf("%s, %s, %s, %s - %s, %s", a.Label, a.Street, a.City, a.State, a.PostalCode, a.Country)
}

func (s CheckoutSession) selectedAddress() *Address {
	for i := range s.Addresses {
		if s.Addresses[i].UID == s.SelectedAddressUID && s.SelectedAddressUID != "" {
			return &s.Addresses[i]
		}
	}
	return nil
}

// BuyNowParams are the navigation parameters of a direct buy-now entry.
// Price and quantity come in as raw strings: malformed numerics mean the
// whole buy-now selection is treated as absent.
type BuyNowParams struct {
	ProductUID string `form:"id"`
	Name       string `form:"name"`
	Price      string `form:"price"`
	Quantity   string `form:"quantity"`
	ImageURL   string `form:"image"`
}

type SelectAddressRequest struct {
	AddressUID string `json:"addressUID"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type AddressFields struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// ConfirmRequest reports the outcome of the gateway's client-side handshake.
type ConfirmRequest struct {
	Cancelled       bool   `json:"cancelled"`
	GatewayOrderUID string `json:"gatewayOrderUID"`
	PaymentUID      string `json:"paymentUID"`
	Signature       string `json:"signature"`
}
