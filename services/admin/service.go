package admin

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

const tokenTTL = 12 * time.Hour

type service struct {
	adminStore mystore.Store[Admin]
	auth       *myauth.Auth
	validate   *validator.Validate
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

func newService(adminStore mystore.Store[Admin], auth *myauth.Auth, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		adminStore: adminStore,
		auth:       auth,
		validate:   validator.New(),
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}
