package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mycontext"
	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/myhttp"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

type webService struct {
	service *service
	auth    *myauth.Auth
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(adminStore mystore.Store[Admin], auth *myauth.Auth, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("admin")
	return &webService{
		service: newService(adminStore, auth, nower, uuider, logger),
		auth:    auth,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/admin/login", s.login()).Methods("POST")
	router.HandleFunc("/api/admin/change-password", s.auth.Require(myauth.RoleAdmin, s.changePassword())).Methods("POST")
}

// Bootstrap creates the configured admin account when it does not exist yet.
func (s *webService) Bootstrap(c context.Context, email string, password string) error {
	return s.service.bootstrap(c, email, password)
}

func (s *webService) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		req := LoginRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		token, err := s.service.login(c, req)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, LoginResponse{Token: token})
	}
}

func (s *webService) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := ChangePasswordRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		err = s.service.changePassword(c, session.UID, req)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "password changed"})
	}
}
