package address

import (
	"context"
	"fmt"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
)

func (s *service) listAddresses(c context.Context, shopperUID string) ([]Address, error) {
	s.logger.Log(c, shopperUID, mylog.SeverityInfo, "Fetch addresses of shopper %s", shopperUID)

	addresses, err := s.addressStore.Query(c, []mystore.Filter{
		{Field: "ShopperUID", Compare: "=", Value: shopperUID},
	}, "CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return addresses, nil
}

func (s *service) createAddress(c context.Context, shopperUID string, addr Address) (Address, error) {
	err := s.validate.Struct(addr)
	if err != nil {
		return Address{}, myerrors.NewInvalidInputError(err)
	}

	addr.UID = s.uuider.Create()
	addr.ShopperUID = shopperUID
	addr.CreatedAt = s.nower.Now()

	s.logger.Log(c, addr.UID, mylog.SeverityInfo, "Create address %s for shopper %s", addr.UID, shopperUID)

	err = s.addressStore.Put(c, addr.UID, addr)
	if err != nil {
		return Address{}, myerrors.NewInternalError(err)
	}

	return addr, nil
}

func (s *service) updateAddress(c context.Context, shopperUID string, addressUID string, addr Address) (Address, error) {
	err := s.validate.Struct(addr)
	if err != nil {
		return Address{}, myerrors.NewInvalidInputError(err)
	}

	s.logger.Log(c, addressUID, mylog.SeverityInfo, "Update address %s of shopper %s", addressUID, shopperUID)

	now := s.nower.Now()

	var updated Address
	err = s.addressStore.RunInTransaction(c, func(c context.Context) error {
		existing, err := s.getOwnedAddress(c, shopperUID, addressUID)
		if err != nil {
			return err
		}

		updated = addr
		updated.UID = existing.UID
		updated.ShopperUID = existing.ShopperUID
		updated.CreatedAt = existing.CreatedAt
		updated.LastModified = &now

		err = s.addressStore.Put(c, addressUID, updated)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Address{}, err
	}

	return updated, nil
}

func (s *service) deleteAddress(c context.Context, shopperUID string, addressUID string) error {
	s.logger.Log(c, addressUID, mylog.SeverityInfo, "Delete address %s of shopper %s", addressUID, shopperUID)

	return s.addressStore.RunInTransaction(c, func(c context.Context) error {
		_, err := s.getOwnedAddress(c, shopperUID, addressUID)
		if err != nil {
			return err
		}

		err = s.addressStore.Delete(c, addressUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}

// getOwnedAddress treats somebody else's address as non-existing so that
// the uid of an address does not leak across shoppers.
func (s *service) getOwnedAddress(c context.Context, shopperUID string, addressUID string) (Address, error) {
	addr, found, err := s.addressStore.Get(c, addressUID)
	if err != nil {
		return Address{}, myerrors.NewInternalError(err)
	}
	if !found || addr.ShopperUID != shopperUID {
		return Address{}, myerrors.NewNotFoundError(fmt.Errorf("address with uid %s not found", addressUID))
	}
	return addr, nil
}
