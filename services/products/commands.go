package products

import (
	"context"
	"fmt"
	"sort"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
)

func (s *service) listProducts(c context.Context, category string) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products (category:%q)", category)

	var prods []Product
	var err error
	if category != "" {
		prods, err = s.productStore.Query(c, []mystore.Filter{{Field: "Category", Compare: "=", Value: category}}, "Name")
	} else {
		prods, err = s.productStore.List(c)
	}
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Name < prods[j].Name
	})

	return prods, nil
}

func (s *service) getProduct(c context.Context, productUID string) (Product, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Fetch details of product uid %s", productUID)

	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID))
	}

	return product, nil
}

func (s *service) upsertProduct(c context.Context, product Product) (Product, error) {
	if product.UID == "" {
		product.UID = s.uuider.Create()
		product.CreatedAt = s.nower.Now()
	}
	if product.Currency == "" {
		product.Currency = "EUR"
	}

	s.logger.Log(c, product.UID, mylog.SeverityInfo, "Store product %s (%s)", product.UID, product.Name)

	err := s.productStore.Put(c, product.UID, product)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}

	return product, nil
}

// seed loads the initial catalog so a fresh deployment has something to sell.
func (s *service) seed(c context.Context) error {
	existing, err := s.productStore.List(c)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.nower.Now()
	for _, p := range initialCatalog {
		p.CreatedAt = now
		err = s.productStore.Put(c, p.UID, p)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
	}

	return nil
}
