package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/form/v4"
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
	"github.com/webshop/storefront/services/checkoutevents"
	"github.com/webshop/storefront/services/gateway"
)

type webService struct {
	service     *service
	auth        *myauth.Auth
	formDecoder *form.Decoder
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[CheckoutSession], cartFetcher CartFetcher, addressKeeper AddressKeeper,
	orderPlacer OrderPlacer, gw gateway.Gateway, pub mypublisher.Publisher,
	deliveryChargeInCents int64, discountInCents int64,
	nower mytime.Nower, uuider myuuid.UUIDer, auth *myauth.Auth) *webService {
	logger := mylog.New("checkout")
	return &webService{
		service: newService(store, cartFetcher, addressKeeper, orderPlacer, gw, pub,
			deliveryChargeInCents, discountInCents, nower, uuider, logger),
		auth:        auth,
		formDecoder: form.NewDecoder(),
		logger:      logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/checkout", s.auth.Require(myauth.RoleShopper, s.startCheckout())).Methods("POST")
	router.HandleFunc("/api/checkout/{checkoutUID}", s.auth.Require(myauth.RoleShopper, s.getCheckout())).Methods("GET")
	router.HandleFunc("/api/checkout/{checkoutUID}", s.auth.Require(myauth.RoleShopper, s.abandon())).Methods("DELETE")
	router.HandleFunc("/api/checkout/{checkoutUID}/address", s.auth.Require(myauth.RoleShopper, s.selectAddress())).Methods("PUT")
	router.HandleFunc("/api/checkout/{checkoutUID}/address", s.auth.Require(myauth.RoleShopper, s.addAddress())).Methods("POST")
	router.HandleFunc("/api/checkout/{checkoutUID}/payment-method", s.auth.Require(myauth.RoleShopper, s.selectPaymentMethod())).Methods("PUT")
	router.HandleFunc("/api/checkout/{checkoutUID}/submit", s.auth.Require(myauth.RoleShopper, s.submit())).Methods("POST")
	router.HandleFunc("/api/checkout/{checkoutUID}/confirm", s.auth.Require(myauth.RoleShopper, s.confirm())).Methods("PUT")
}

func (s *webService) Subscribe(c context.Context) error {
	return s.service.publisher.CreateTopic(c, checkoutevents.TopicName)
}

// startCheckout enters checkout. Buy-now entries carry their product as
// query parameters: ?id=...&name=...&price=...&quantity=...&image=...
func (s *webService) startCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		buyNow := BuyNowParams{}
		err := s.formDecoder.Decode(&buyNow, r.URL.Query())
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		checkout, err := s.service.startCheckout(c, session.UID, session.BearerToken, buyNow)
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) getCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		checkout, err := s.service.getCheckout(c, session.UID, mux.Vars(r)["checkoutUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) selectAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 3, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := SelectAddressRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		checkout, err := s.service.selectAddress(c, session.UID, mux.Vars(r)["checkoutUID"], req.AddressUID)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) addAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 4, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		fields := AddressFields{}
		err := json.NewDecoder(r.Body).Decode(&fields)
		if err != nil {
			responseWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			return
		}

		checkout, err := s.service.addAddress(c, session.UID, session.BearerToken, mux.Vars(r)["checkoutUID"], fields)
		if err != nil {
			responseWriter.WriteError(c, w, 4, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) selectPaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 5, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := SelectPaymentMethodRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(err))
			return
		}

		checkout, err := s.service.selectPaymentMethod(c, session.UID, mux.Vars(r)["checkoutUID"], req.PaymentMethod)
		if err != nil {
			responseWriter.WriteError(c, w, 5, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 6, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		checkout, err := s.service.submit(c, session.UID, session.BearerToken, mux.Vars(r)["checkoutUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 6, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 7, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		req := ConfirmRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 7, myerrors.NewInvalidInputError(err))
			return
		}

		checkout, err := s.service.confirm(c, session.UID, session.BearerToken, mux.Vars(r)["checkoutUID"], req)
		if err != nil {
			responseWriter.WriteError(c, w, 7, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, checkout)
	}
}

func (s *webService) abandon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		session, ok := myauth.SessionFromContext(c)
		if !ok {
			responseWriter.WriteError(c, w, 8, myerrors.NewAuthenticationError(fmt.Errorf("no session")))
			return
		}

		err := s.service.abandon(c, session.UID, mux.Vars(r)["checkoutUID"])
		if err != nil {
			responseWriter.WriteError(c, w, 8, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "checkout abandoned"})
	}
}
