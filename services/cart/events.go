package cart

import (
	"context"
	"fmt"

	"github.com/webshop/storefront/lib/myhttp"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/services/checkoutevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCheckoutStarted(c context.Context, topic string, event checkoutevents.CheckoutStarted) error {
	return nil
}

// OnCheckoutCompleted empties the cart after it has been converted into an
// order. Carts of buy-now checkouts are left alone.
func (s *service) OnCheckoutCompleted(c context.Context, topic string, event checkoutevents.CheckoutCompleted) error {
	s.logger.Log(c, event.CheckoutUID, mylog.SeverityInfo, "Checkout %s of shopper %s completed (%s)", event.CheckoutUID, event.ShopperUID, event.CheckoutStatus)

	if event.CheckoutStatus != checkoutevents.CheckoutStatusSuccess {
		return nil
	}
	if event.Source != "cart" {
		return nil
	}

	return s.clearCart(c, event.ShopperUID)
}
