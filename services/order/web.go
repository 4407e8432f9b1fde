package order

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
	"github.com/webshop/storefront/lib/mypublisher"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
	"github.com/webshop/storefront/services/order/orderevents"
)

type webService struct {
	service *service
	auth    *myauth.Auth
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Order], pub mypublisher.Publisher, signingSecret string, nower mytime.Nower, uuider myuuid.UUIDer, auth *myauth.Auth) *webService {
	logger := mylog.New("order")
	return &webService{
		service: newService(store, pub, signingSecret, nower, uuider, logger),
		auth:    auth,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/order", s.auth.Require(myauth.RoleShopper, s.placeOrder())).Methods("POST")
	router.HandleFunc("/api/order/verify", s.auth.Require(myauth.RoleShopper, s.verifyPayment())).Methods("POST")
	router.HandleFunc("/api/orders", s.auth.Require(myauth.RoleShopper, s.listOrders())).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}", s.auth.Require(myauth.RoleShopper, s.getOrder())).Methods("GET")
}

func (s *webService) Subscribe(c context.Context) error {
	return s.service.publisher.CreateTopic(c, orderevents.TopicName)
}

func (s *webService) placeOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := PlaceOrderRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		order, err := s.service.placeOrder(c, session.UID, req)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, PlaceOrderResponse{OrderUID: order.UID, Status: order.Status})
	}
}

func (s *webService) verifyPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := VerifyPaymentRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		order, verified, err := s.service.verifyAndPlaceOrder(c, session.UID, req)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, VerifyPaymentResponse{Verified: verified, OrderUID: order.UID})
	}
}

func (s *webService) listOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 3, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		orders, err := s.service.listOrders(c, session.UID)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, OrderListResponse{Orders: orders})
	}
}

func (s *webService) getOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 4, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		order, err := s.service.getOrder(c, session.UID, mux.Vars(r)["orderUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, order)
	}
}
