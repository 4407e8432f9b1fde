package order

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPlaced             OrderStatus = "placed"
	OrderStatusPaid               OrderStatus = "paid"
	OrderStatusVerificationFailed OrderStatus = "verification_failed"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "ONLINE"
)

type Order struct {
	UID                 string      `json:"uid"`
	ShopperUID          string      `json:"-"`
	Items               []OrderLine `json:"items"`
	ShippingAddressText string      `json:"shippingAddress"`
	PaymentMethod       string      `json:"paymentMethod"`
	Status              OrderStatus `json:"status"`
	TotalAmountInCents  int64       `json:"totalAmount"`
	GatewayOrderUID     string      `json:"-"`
	PaymentUID          string      `json:"-"`
	CreatedAt           time.Time   `json:"createdAt"`
}

type OrderLine struct {
	ProductUID   string `json:"product" validate:"required"`
	Name         string `json:"name"`
	ImageURL     string `json:"image"`
	PriceInCents int64  `json:"price"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
}

// PlaceOrderRequest is what the checkout flow submits when the shopper
// confirms a cash-on-delivery order.
type PlaceOrderRequest struct {
	Items               []OrderLine `json:"items" validate:"required,min=1,dive"`
	ShippingAddressText string      `json:"shippingAddress" validate:"required"`
	PaymentMethod       string      `json:"paymentMethod" validate:"required,oneof=COD ONLINE"`
	TotalAmountInCents  int64       `json:"totalAmount" validate:"gte=0"`
}

// VerifyPaymentRequest carries the gateway confirmation of an online
// payment plus the order it should result in.
type VerifyPaymentRequest struct {
	Order           PlaceOrderRequest `json:"order"`
	GatewayOrderUID string            `json:"gatewayOrderUID" validate:"required"`
	PaymentUID      string            `json:"paymentUID" validate:"required"`
	Signature       string            `json:"signature" validate:"required"`
}

type PlaceOrderResponse struct {
	OrderUID string      `json:"orderId"`
	Status   OrderStatus `json:"status"`
}

type VerifyPaymentResponse struct {
	Verified bool   `json:"verified"`
	OrderUID string `json:"orderId"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
