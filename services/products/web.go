package products

import (
	"context"
	"encoding/json"
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
func NewService(store mystore.Store[Product], nower mytime.Nower, uuider myuuid.UUIDer, auth *myauth.Auth) *webService {
	logger := mylog.New("products")
	return &webService{
		service: newService(store, nower, uuider, logger),
		auth:    auth,
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/products/{productUID}", s.getProduct()).Methods("GET")

	// Catalog management is for the back-office only
	router.HandleFunc("/api/products", s.auth.Require(myauth.RoleAdmin, s.upsertProduct())).Methods("POST")
}

func (s *webService) Seed(c context.Context) error {
	return s.service.seed(c)
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		prods, err := s.service.listProducts(c, r.URL.Query().Get("category"))
		if err != nil {
			responseWriter.WriteError(c, w, 1, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, ProductListResponse{Products: prods})
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, err := s.service.getProduct(c, productUID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) upsertProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		product := Product{}
		err := json.NewDecoder(r.Body).Decode(&product)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		product, err = s.service.upsertProduct(c, product)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, product)
	}
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}
