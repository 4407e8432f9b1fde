package checkout

import (
	"time"

	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mypublisher"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
	"github.com/webshop/storefront/services/gateway"
)

const (
	collaboratorTimeout = 15 * time.Second
	defaultCurrency     = "EUR"
)

type service struct {
	sessionStore  mystore.Store[CheckoutSession]
	cartFetcher   CartFetcher
	addressKeeper AddressKeeper
	orderPlacer   OrderPlacer
	gw            gateway.Gateway
	publisher     mypublisher.Publisher

	deliveryChargeInCents int64
	discountInCents       int64

	nower  mytime.Nower
	uuider myuuid.UUIDer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[CheckoutSession], cartFetcher CartFetcher, addressKeeper AddressKeeper,
	orderPlacer OrderPlacer, gw gateway.Gateway, pub mypublisher.Publisher,
	deliveryChargeInCents int64, discountInCents int64,
	nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		sessionStore:          store,
		cartFetcher:           cartFetcher,
		addressKeeper:         addressKeeper,
		orderPlacer:           orderPlacer,
		gw:                    gw,
		publisher:             pub,
		deliveryChargeInCents: deliveryChargeInCents,
		discountInCents:       discountInCents,
		nower:                 nower,
		uuider:                uuider,
		logger:                logger,
	}
}
