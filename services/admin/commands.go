package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
)

// bootstrap makes sure the configured admin account exists. An already
// existing account is left alone, including its current password.
func (s *service) bootstrap(c context.Context, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	return s.adminStore.RunInTransaction(c, func(c context.Context) error {
		existing, err := s.findByEmail(c, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		hash, err := myauth.HashPassword(password)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		admin := Admin{
			UID:          s.uuider.Create(),
			Email:        strings.ToLower(email),
			PasswordHash: hash,
			CreatedAt:    s.nower.Now(),
		}

		s.logger.Log(c, admin.UID, mylog.SeverityInfo, "Bootstrap admin account %s", admin.Email)

		return s.adminStore.Put(c, admin.UID, admin)
	})
}

func (s *service) login(c context.Context, req LoginRequest) (string, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return "", myerrors.NewInvalidInputError(err)
	}

	admin, err := s.findByEmail(c, req.Email)
	if err != nil {
		return "", err
	}
	// same error for unknown account and wrong password
	if admin == nil || !myauth.VerifyPassword(admin.PasswordHash, req.Password) {
		return "", myerrors.NewAuthenticationError(fmt.Errorf("invalid credentials"))
	}

	token, err := s.auth.IssueToken(admin.UID, myauth.RoleAdmin, tokenTTL)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	s.logger.Log(c, admin.UID, mylog.SeverityInfo, "Admin %s logged in", admin.Email)

	return token, nil
}

// changePassword verifies the current password and persists the new hash.
func (s *service) changePassword(c context.Context, adminUID string, req ChangePasswordRequest) error {
	err := s.validate.Struct(req)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	now := s.nower.Now()
	return s.adminStore.RunInTransaction(c, func(c context.Context) error {
		admin, found, err := s.adminStore.Get(c, adminUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("admin with uid %s not found", adminUID))
		}

		if !myauth.VerifyPassword(admin.PasswordHash, req.OldPassword) {
			return myerrors.NewAuthenticationError(fmt.Errorf("current password does not match"))
		}

		hash, err := myauth.HashPassword(req.NewPassword)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		admin.PasswordHash = hash
		admin.LastModified = &now

		s.logger.Log(c, adminUID, mylog.SeverityInfo, "Admin %s changed password", admin.Email)

		return s.adminStore.Put(c, adminUID, admin)
	})
}

func (s *service) findByEmail(c context.Context, email string) (*Admin, error) {
	admins, err := s.adminStore.Query(c, []mystore.Filter{
		{Field: "Email", Compare: "=", Value: strings.ToLower(email)},
	}, "Email")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if len(admins) == 0 {
		return nil, nil
	}
	return &admins[0], nil
}
