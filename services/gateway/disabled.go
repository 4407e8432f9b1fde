package gateway

import (
	"context"
	"fmt"

	"github.com/webshop/storefront/lib/myerrors"
)

type disabledGateway struct{}

// NewDisabled is used when no payment provider is configured: every
// gateway interaction fails, cash-on-delivery keeps working.
func NewDisabled() Gateway {
	return disabledGateway{}
}

func (g disabledGateway) CreateOrder(c context.Context, amountInCents int64, currency string, reference string) (GatewayOrder, error) {
	return GatewayOrder{}, myerrors.NewCollaboratorError(fmt.Errorf("no payment gateway configured"))
}

func (g disabledGateway) PaymentStatus(c context.Context, paymentUID string) (PaymentStatus, error) {
	return PaymentStatusUndefined, myerrors.NewCollaboratorError(fmt.Errorf("no payment gateway configured"))
}
