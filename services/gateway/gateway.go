package gateway

import (
	"context"
)

//go:generate mockgen -source=gateway.go -package gateway -destination gateway_mock.go Gateway

// Gateway abstracts the payment provider that handles online payments.
type Gateway interface {
	// CreateOrder registers the amount-to-be-paid with the provider and
	// returns the uid the payment widget needs to start the payment.
	CreateOrder(c context.Context, amountInCents int64, currency string, reference string) (GatewayOrder, error)

	// PaymentStatus reports the provider-side status of a payment.
	PaymentStatus(c context.Context, paymentUID string) (PaymentStatus, error)
}

type GatewayOrder struct {
	UID           string `json:"uid"`
	ProviderName  string `json:"provider"`
	AmountInCents int64  `json:"amount"`
	Currency      string `json:"currency"`
	Reference     string `json:"reference"`
}

type PaymentStatus string

const (
	PaymentStatusUndefined PaymentStatus = ""
	PaymentStatusOpen      PaymentStatus = "open"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)
