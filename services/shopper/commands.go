package shopper

import (
	"context"
	"fmt"
	"strings"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
)

func (s *service) register(c context.Context, req RegisterRequest) (Shopper, string, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return Shopper{}, "", myerrors.NewInvalidInputError(err)
	}

	var shopper Shopper
	err = s.shopperStore.RunInTransaction(c, func(c context.Context) error {
		existing, err := s.findByEmail(c, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("an account with this email already exists"))
		}

		hash, err := myauth.HashPassword(req.Password)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		shopper = Shopper{
			UID:          s.uuider.Create(),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        strings.ToLower(req.Email),
			PasswordHash: hash,
			CreatedAt:    s.nower.Now(),
		}

		return s.shopperStore.Put(c, shopper.UID, shopper)
	})
	if err != nil {
		return Shopper{}, "", err
	}

	s.logger.Log(c, shopper.UID, mylog.SeverityInfo, "Registered shopper %s", shopper.Email)

	token, err := s.auth.IssueToken(shopper.UID, myauth.RoleShopper, tokenTTL)
	if err != nil {
		return Shopper{}, "", myerrors.NewInternalError(err)
	}

	return shopper, token, nil
}

func (s *service) login(c context.Context, req LoginRequest) (Shopper, string, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return Shopper{}, "", myerrors.NewInvalidInputError(err)
	}

	shopper, err := s.findByEmail(c, req.Email)
	if err != nil {
		return Shopper{}, "", err
	}
	// same error for unknown account and wrong password
	if shopper == nil || !myauth.VerifyPassword(shopper.PasswordHash, req.Password) {
		return Shopper{}, "", myerrors.NewAuthenticationError(fmt.Errorf("invalid credentials"))
	}

	token, err := s.auth.IssueToken(shopper.UID, myauth.RoleShopper, tokenTTL)
	if err != nil {
		return Shopper{}, "", myerrors.NewInternalError(err)
	}

	s.logger.Log(c, shopper.UID, mylog.SeverityInfo, "Shopper %s logged in", shopper.Email)

	return *shopper, token, nil
}

func (s *service) getProfile(c context.Context, shopperUID string) (Shopper, error) {
	shopper, found, err := s.shopperStore.Get(c, shopperUID)
	if err != nil {
		return Shopper{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Shopper{}, myerrors.NewNotFoundError(fmt.Errorf("shopper with uid %s not found", shopperUID))
	}

	return shopper, nil
}

func (s *service) findByEmail(c context.Context, email string) (*Shopper, error) {
	shoppers, err := s.shopperStore.Query(c, []mystore.Filter{
		{Field: "Email", Compare: "=", Value: strings.ToLower(email)},
	}, "Email")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if len(shoppers) == 0 {
		return nil, nil
	}
	return &shoppers[0], nil
}
