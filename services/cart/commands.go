package cart

import (
	"context"
	"fmt"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
)

func (s *service) getCart(c context.Context, shopperUID string) (Cart, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch cart of shopper %s", shopperUID)

	cart, found, err := s.cartStore.Get(c, shopperUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		// A shopper without a cart has an empty one
		return Cart{ShopperUID: shopperUID, Items: []CartLine{}}, nil
	}

	return cart, nil
}

func (s *service) addItem(c context.Context, shopperUID string, line CartLine) (Cart, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Add %d x %s to cart of shopper %s", line.Quantity, line.ProductUID, shopperUID)

	if line.ProductUID == "" {
		return Cart{}, myerrors.NewInvalidInputError(fmt.Errorf("missing product uid"))
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			cart = Cart{ShopperUID: shopperUID, Items: []CartLine{}, CreatedAt: now}
		}

		merged := false
		for i, existing := range cart.Items {
			if existing.ProductUID == line.ProductUID {
				cart.Items[i].Quantity += line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, line)
		}
		cart.LastModified = &now

		return s.putCart(c, cart)
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) adjustQuantity(c context.Context, shopperUID string, productUID string, quantity int) (Cart, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Set quantity of %s to %d in cart of shopper %s", productUID, quantity, shopperUID)

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart of shopper %s not found", shopperUID))
		}

		idx := -1
		for i, existing := range cart.Items {
			if existing.ProductUID == productUID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return myerrors.NewNotFoundError(fmt.Errorf("product %s not in cart of shopper %s", productUID, shopperUID))
		}

		if quantity <= 0 {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		} else {
			cart.Items[idx].Quantity = quantity
		}
		cart.LastModified = &now

		return s.putCart(c, cart)
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) removeItem(c context.Context, shopperUID string, productUID string) (Cart, error) {
	return s.adjustQuantity(c, shopperUID, productUID, 0)
}

func (s *service) clearCart(c context.Context, shopperUID string) error {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Clear cart of shopper %s", shopperUID)

	now := s.nower.Now()

	return s.cartStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		cart, found, err := s.cartStore.Get(c, shopperUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || cart.IsEmpty() {
			return nil
		}

		cart.Items = []CartLine{}
		cart.LastModified = &now

		return s.putCart(c, cart)
	})
}

func (s *service) putCart(c context.Context, cart Cart) error {
	err := s.cartStore.Put(c, cart.ShopperUID, cart)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}
