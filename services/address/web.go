package address

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
func NewService(store mystore.Store[Address], nower mytime.Nower, uuider myuuid.UUIDer, auth *myauth.Auth) *webService {
	logger := mylog.New("address")
	return &webService{
		service: newService(store, nower, uuider, logger),
		auth:    auth,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/address", s.auth.Require(myauth.RoleShopper, s.listAddresses())).Methods("GET")
	router.HandleFunc("/api/address", s.auth.Require(myauth.RoleShopper, s.createAddress())).Methods("POST")
	router.HandleFunc("/api/address/{addressUID}", s.auth.Require(myauth.RoleShopper, s.updateAddress())).Methods("PUT")
	router.HandleFunc("/api/address/{addressUID}", s.auth.Require(myauth.RoleShopper, s.deleteAddress())).Methods("DELETE")
}

func (s *webService) listAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		addresses, err := s.service.listAddresses(c, session.UID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, AddressListResponse{Addresses: addresses})
	}
}

func (s *webService) createAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		addr := Address{}
		err := json.NewDecoder(r.Body).Decode(&addr)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		addr, err = s.service.createAddress(c, session.UID, addr)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, addr)
	}
}

func (s *webService) updateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 3, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		addr := Address{}
		err := json.NewDecoder(r.Body).Decode(&addr)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		addr, err = s.service.updateAddress(c, session.UID, mux.Vars(r)["addressUID"], addr)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, addr)
	}
}

func (s *webService) deleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 4, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		err := s.service.deleteAddress(c, session.UID, mux.Vars(r)["addressUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "address deleted"})
	}
}

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}
