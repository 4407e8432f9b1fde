package cart

import (
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mypubsub"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
)

type service struct {
	cartStore  mystore.Store[Cart]
	subscriber mypubsub.PubSub
	nower      mytime.Nower
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Cart], subscriber mypubsub.PubSub, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cartStore:  store,
		subscriber: subscriber,
		nower:      nower,
		logger:     logger,
	}
}
