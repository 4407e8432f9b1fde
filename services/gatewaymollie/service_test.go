package gatewaymollie

import (
	"context"
	"testing"

	"github.com/VictorAvelar/mollie-api-go/v3/mollie"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/webshop/storefront/services/gateway"
)

func TestCreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()

	// given
	payer := NewMockPayer(ctrl)
	payer.EXPECT().UseAPIKey("test_123")
	payer.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, request mollie.Payment) (mollie.Payment, error) {
			assert.Equal(t, "249.00", request.Amount.Value)
			assert.Equal(t, "EUR", request.Amount.Currency)
			request.ID = "tr_123"
			return request, nil
		})

	// when
	sut := New(payer, "test_123")
	order, err := sut.CreateOrder(c, 24900, "EUR", "checkout-1")

	// then
	assert.NoError(t, err)
	assert.Equal(t, "tr_123", order.UID)
	assert.Equal(t, "mollie", order.ProviderName)
}

func TestPaymentStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()

	payer := NewMockPayer(ctrl)
	payer.EXPECT().UseAPIKey("test_123")
	payer.EXPECT().GetPaymentOnID(gomock.Any(), "tr_123").Return(mollie.Payment{ID: "tr_123", Status: "paid"}, nil)

	sut := New(payer, "test_123")
	status, err := sut.PaymentStatus(c, "tr_123")

	assert.NoError(t, err)
	assert.Equal(t, gateway.PaymentStatusPaid, status)
}

func TestAmountFormatting(t *testing.T) {
	assert.Equal(t, "0.40", amountAsDecimalString(40))
	assert.Equal(t, "1.00", amountAsDecimalString(100))
	assert.Equal(t, "249.05", amountAsDecimalString(24905))
}
