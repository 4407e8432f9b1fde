package address

import (
	"github.com/go-playground/validator/v10"

	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

type service struct {
	addressStore mystore.Store[Address]
	validate     *validator.Validate
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Address], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		addressStore: store,
		validate:     validator.New(),
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
