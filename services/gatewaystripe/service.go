package gatewaystripe

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v74"

	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/services/gateway"
)

const providerName = "stripe"

type stripeGateway struct {
	payer  Payer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func New(payer Payer, apiKey string) gateway.Gateway {
	payer.UseAPIKey(apiKey)
	return &stripeGateway{
		payer:  payer,
		logger: mylog.New("gatewaystripe"),
	}
}

func (g *stripeGateway) CreateOrder(c context.Context, amountInCents int64, currency string, reference string) (gateway.GatewayOrder, error) {
	g.logger.Log(c, reference, mylog.SeverityInfo, "Create stripe payment-intent of %d %s for %s", amountInCents, currency, reference)

	intent, err := g.payer.CreatePaymentIntent(c, stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(strings.ToLower(currency)),
		Params: stripe.Params{
			Metadata: map[string]string{
				"reference": reference,
			},
		},
	})
	if err != nil {
		return gateway.GatewayOrder{}, err
	}

	return gateway.GatewayOrder{
		UID:           intent.ID,
		ProviderName:  providerName,
		AmountInCents: amountInCents,
		Currency:      currency,
		Reference:     reference,
	}, nil
}

func (g *stripeGateway) PaymentStatus(c context.Context, paymentUID string) (gateway.PaymentStatus, error) {
	intent, err := g.payer.GetPaymentIntent(c, paymentUID)
	if err != nil {
		return gateway.PaymentStatusUndefined, err
	}

	return statusFromIntent(intent.Status), nil
}

func statusFromIntent(status stripe.PaymentIntentStatus) gateway.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return gateway.PaymentStatusPaid
	case stripe.PaymentIntentStatusCanceled:
		return gateway.PaymentStatusCancelled
	case stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusProcessing:
		return gateway.PaymentStatusOpen
	default:
		return gateway.PaymentStatusFailed
	}
}
