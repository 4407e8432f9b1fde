package shopper

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

const tokenTTL = 72 * time.Hour

type service struct {
	shopperStore mystore.Store[Shopper]
	auth         *myauth.Auth
	validate     *validator.Validate
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

func newService(shopperStore mystore.Store[Shopper], auth *myauth.Auth, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		shopperStore: shopperStore,
		auth:         auth,
		validate:     validator.New(),
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
