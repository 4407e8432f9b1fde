package address

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

var (
	home = Address{
		UID:        "addr-1",
		ShopperUID: "shopper-1",
		Label:      "Home",
		Street:     "42 Main street",
		City:       "Springfield",
		State:      "Oregon",
		PostalCode: "97477",
		Country:    "USA",
		Phone:      "555-0100",
		CreatedAt:  mytime.ExampleTime,
	}
	office = Address{
		UID:        "addr-2",
		ShopperUID: "shopper-1",
		Label:      "Office",
		Street:     "1 Work plaza",
		City:       "Springfield",
		State:      "Oregon",
		PostalCode: "97478",
		Country:    "USA",
		Phone:      "555-0101",
		CreatedAt:  mytime.ExampleTime.Add(time.Hour),
	}
)

func TestAddressService(t *testing.T) {

	t.Run("List addresses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, token := setup(t, ctrl)

		// given
		storer.Put(ctx, home.UID, home)
		storer.Put(ctx, office.UID, office)
		other := home
		other.UID = "addr-3"
		other.ShopperUID = "shopper-2"
		storer.Put(ctx, other.UID, other)

		// when
		response := doRequest(router, http.MethodGet, "/api/address", "", token)

		// then
		assert.Equal(t, 200, response.Code)
		got := AddressListResponse{}
		err := json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.Len(t, got.Addresses, 2)
		assert.Equal(t, "addr-1", got.Addresses[0].UID)
		assert.Equal(t, "addr-2", got.Addresses[1].UID)
	})

	t.Run("Create address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, uuider, token := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("addr-123")

		// when
		response := doRequest(router, http.MethodPost, "/api/address",
			`{"label":"Home","street":"42 Main street","city":"Springfield","state":"Oregon","postalCode":"97477","country":"USA","phone":"555-0100"}`, token)

		// then
		assert.Equal(t, 200, response.Code)
		addr, exists, _ := storer.Get(ctx, "addr-123")
		assert.True(t, exists)
		assert.Equal(t, "shopper-1", addr.ShopperUID)
		assert.Equal(t, "Home, 42 Main street, Springfield, Oregon - 97477, USA", addr.Text())
	})

	t.Run("Create address with missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, token := setup(t, ctrl)

		// when
		response := doRequest(router, http.MethodPost, "/api/address",
			`{"label":"Home","street":"42 Main street"}`, token)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Update address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, token := setup(t, ctrl)

		// given
		storer.Put(ctx, home.UID, home)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := doRequest(router, http.MethodPut, "/api/address/addr-1",
			`{"label":"Home","street":"43 Main street","city":"Springfield","state":"Oregon","postalCode":"97477","country":"USA","phone":"555-0100"}`, token)

		// then
		assert.Equal(t, 200, response.Code)
		addr, _, _ := storer.Get(ctx, "addr-1")
		assert.Equal(t, "43 Main street", addr.Street)
		assert.Equal(t, "shopper-1", addr.ShopperUID)
		assert.NotNil(t, addr.LastModified)
	})

	t.Run("Update somebody else's address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, nower, _, token := setup(t, ctrl)

		// given
		other := home
		other.ShopperUID = "shopper-2"
		storer.Put(ctx, other.UID, other)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := doRequest(router, http.MethodPut, "/api/address/addr-1",
			`{"label":"Home","street":"43 Main street","city":"Springfield","state":"Oregon","postalCode":"97477","country":"USA","phone":"555-0100"}`, token)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Delete address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, token := setup(t, ctrl)

		// given
		storer.Put(ctx, home.UID, home)

		// when
		response := doRequest(router, http.MethodDelete, "/api/address/addr-1", "", token)

		// then
		assert.Equal(t, 200, response.Code)
		_, exists, _ := storer.Get(ctx, "addr-1")
		assert.False(t, exists)
	})

	t.Run("Delete address not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, token := setup(t, ctrl)

		// when
		response := doRequest(router, http.MethodDelete, "/api/address/addr-unknown", "", token)

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func doRequest(router *mux.Router, method string, url string, body string, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, url, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Address], *mytime.MockNower, *myuuid.MockUUIDer, string) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[Address](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	auth := myauth.New("my-test-secret", mytime.RealNower{})

	token, err := auth.IssueToken("shopper-1", myauth.RoleShopper, time.Hour)
	assert.NoError(t, err)

	sut := NewService(storer, nower, uuider, auth)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, nower, uuider, token
}
