package cart

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
	"github.com/webshop/storefront/lib/mypubsub"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/services/checkoutevents"
)

type webService struct {
	service *service
	auth    *myauth.Auth
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Cart], subscriber mypubsub.PubSub, nower mytime.Nower, auth *myauth.Auth) *webService {
	logger := mylog.New("cart")
	return &webService{
		service: newService(store, subscriber, nower, logger),
		auth:    auth,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart", s.auth.Require(myauth.RoleShopper, s.getCart())).Methods("GET")
	router.HandleFunc("/api/cart", s.auth.Require(myauth.RoleShopper, s.addItem())).Methods("POST")
	router.HandleFunc("/api/cart/{productUID}", s.auth.Require(myauth.RoleShopper, s.adjustQuantity())).Methods("PUT")
	router.HandleFunc("/api/cart/{productUID}", s.auth.Require(myauth.RoleShopper, s.removeItem())).Methods("DELETE")

	// Pubsub will push checkout events to this endpoint
	router.HandleFunc("/api/cart/event", s.handleEvent()).Methods("POST")
}

func (s *webService) Subscribe(c context.Context) error {
	return s.service.Subscribe(c)
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		cart, err := s.service.getCart(c, session.UID)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		line := CartLine{}
		err := json.NewDecoder(r.Body).Decode(&line)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		cart, err := s.service.addItem(c, session.UID, line)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) adjustQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 3, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		body := struct {
			Quantity int `json:"quantity"`
		}{}
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		cart, err := s.service.adjustQuantity(c, session.UID, mux.Vars(r)["productUID"], body.Quantity)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) removeItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 4, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		cart, err := s.service.removeItem(c, session.UID, mux.Vars(r)["productUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			responseWriter.WriteError(c, w, 5, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "event processed"})
	}
}
