package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/myevents"
)

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".started"
	checkoutCompletedName = TopicName + ".completed"
)

type CheckoutEventService interface {
	Subscribe(c context.Context) error
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutStartedName:
		{
			event := CheckoutStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutStarted(c, envelope.Topic, event)
		}
	case checkoutCompletedName:
		{
			event := CheckoutCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCheckoutCompleted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type CheckoutStarted struct {
	CheckoutUID   string
	ShopperUID    string
	Source        string // "cart" or "buy-now"
	AmountInCents int64
	Currency      string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.CheckoutUID
}

type CheckoutStatus string

const (
	CheckoutStatusUndefined          CheckoutStatus = ""
	CheckoutStatusSuccess            CheckoutStatus = "success"
	CheckoutStatusCancelled          CheckoutStatus = "cancelled"
	CheckoutStatusFailed             CheckoutStatus = "failed"
	CheckoutStatusVerificationFailed CheckoutStatus = "verification_failed"
)

type CheckoutCompleted struct {
	CheckoutUID    string
	ShopperUID     string
	Source         string
	OrderUID       string
	PaymentMethod  string
	CheckoutStatus CheckoutStatus
	StatusDetails  string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.CheckoutUID
}
