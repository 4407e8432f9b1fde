package gatewaymollie

import (
	"context"
	"fmt"

	"github.com/VictorAvelar/mollie-api-go/v3/mollie"

	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/services/gateway"
)

const providerName = "mollie"

type mollieGateway struct {
	payer  Payer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func New(payer Payer, apiKey string) gateway.Gateway {
	payer.UseAPIKey(apiKey)
	return &mollieGateway{
		payer:  payer,
		logger: mylog.New("gatewaymollie"),
	}
}

func (g *mollieGateway) CreateOrder(c context.Context, amountInCents int64, currency string, reference string) (gateway.GatewayOrder, error) {
	g.logger.Log(c, reference, mylog.SeverityInfo, "Create mollie payment of %d %s for %s", amountInCents, currency, reference)

	payment, err := g.payer.CreatePayment(c, mollie.Payment{
		Amount: &mollie.Amount{
			Currency: currency,
			Value:    amountAsDecimalString(amountInCents),
		},
		Description: fmt.Sprintf("Checkout %s", reference),
		Metadata: map[string]string{
			"reference": reference,
		},
	})
	if err != nil {
		return gateway.GatewayOrder{}, err
	}

	return gateway.GatewayOrder{
		UID:           payment.ID,
		ProviderName:  providerName,
		AmountInCents: amountInCents,
		Currency:      currency,
		Reference:     reference,
	}, nil
}

func (g *mollieGateway) PaymentStatus(c context.Context, paymentUID string) (gateway.PaymentStatus, error) {
	payment, err := g.payer.GetPaymentOnID(c, paymentUID)
	if err != nil {
		return gateway.PaymentStatusUndefined, err
	}

	return statusFromPayment(payment.Status), nil
}

func statusFromPayment(status string) gateway.PaymentStatus {
	switch status {
	case "paid":
		return gateway.PaymentStatusPaid
	case "canceled", "expired":
		return gateway.PaymentStatusCancelled
	case "open", "pending", "authorized":
		return gateway.PaymentStatusOpen
	default:
		return gateway.PaymentStatusFailed
	}
}

// Mollie wants amounts as a decimal string with exactly 2 digits.
func amountAsDecimalString(amountInCents int64) string {
	return fmt.Sprintf("%d.%02d", amountInCents/100, amountInCents%100)
}
