package mypublisher

import (
	"encoding/json"
	"strings"

	"github.com/webshop/storefront/lib/myevents"
	"github.com/webshop/storefront/lib/mytime"
)

// CreatePubsubMessage wraps an event the way a push-subscription delivers
// it, for use in subscriber-endpoint tests.
func CreatePubsubMessage(event myevents.Event) string {
	eventBytes, _ := json.Marshal(event)
	envelope := myevents.EventEnvelope{
		UID:           "123",
		CreatedAt:     mytime.ExampleTime,
		Topic:         strings.Split(event.GetEventTypeName(), ".")[0],
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(eventBytes),
	}
	envelopeBytes, _ := json.Marshal(envelope)

	req := myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: envelopeBytes,
		},
		Subscription: envelope.Topic,
	}

	reqBytes, _ := json.Marshal(req)

	return string(reqBytes)
}
