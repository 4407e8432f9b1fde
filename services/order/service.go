package order

import (
	"github.com/go-playground/validator/v10"

	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mypublisher"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

type service struct {
	orderStore    mystore.Store[Order]
	publisher     mypublisher.Publisher
	validate      *validator.Validate
	signingSecret string
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Order], pub mypublisher.Publisher, signingSecret string, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		orderStore:    store,
		publisher:     pub,
		validate:      validator.New(),
		signingSecret: signingSecret,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}
