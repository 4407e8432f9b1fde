package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/webshop/storefront/lib/myauth"
	"github.com/webshop/storefront/lib/mystore"
	"github.com/webshop/storefront/lib/mytime"
	"github.com/webshop/storefront/lib/myuuid"
)

func TestAdmin(t *testing.T) {

	t.Run("Bootstrap creates the account once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, _, store, sut, uuider := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("admin-1")

		// when
		err := sut.Bootstrap(c, "owner@example.com", "supersecret")
		assert.NoError(t, err)
		// second bootstrap must not create or touch anything
		err = sut.Bootstrap(c, "owner@example.com", "otherpassword")
		assert.NoError(t, err)

		// then
		admins, err := store.List(c)
		assert.NoError(t, err)
		assert.Len(t, admins, 1)
		assert.Equal(t, "owner@example.com", admins[0].Email)
		assert.True(t, myauth.VerifyPassword(admins[0].PasswordHash, "supersecret"))
	})

	t.Run("Login with valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, sut, uuider := setup(t, ctrl)
		uuider.EXPECT().Create().Return("admin-1")
		err := sut.Bootstrap(c, "owner@example.com", "supersecret")
		assert.NoError(t, err)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"email":"owner@example.com","password":"supersecret"}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		resp := LoginResponse{}
		err = json.Unmarshal(response.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, _, sut, uuider := setup(t, ctrl)
		uuider.EXPECT().Create().Return("admin-1")
		err := sut.Bootstrap(c, "owner@example.com", "supersecret")
		assert.NoError(t, err)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"email":"owner@example.com","password":"wrong"}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Login with unknown account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/login",
			strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Change password persists the new hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, store, sut, uuider := setup(t, ctrl)
		uuider.EXPECT().Create().Return("admin-1")
		err := sut.Bootstrap(c, "owner@example.com", "supersecret")
		assert.NoError(t, err)
		token := loginToken(t, router)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/change-password",
			strings.NewReader(`{"oldPassword":"supersecret","newPassword":"evenmoresecret"}`))
		request.Header.Set("Authorization", "Bearer "+token)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		admin, found, err := store.Get(c, "admin-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.True(t, myauth.VerifyPassword(admin.PasswordHash, "evenmoresecret"))
		assert.False(t, myauth.VerifyPassword(admin.PasswordHash, "supersecret"))
	})

	t.Run("Change password with wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, store, sut, uuider := setup(t, ctrl)
		uuider.EXPECT().Create().Return("admin-1")
		err := sut.Bootstrap(c, "owner@example.com", "supersecret")
		assert.NoError(t, err)
		token := loginToken(t, router)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/change-password",
			strings.NewReader(`{"oldPassword":"wrong","newPassword":"evenmoresecret"}`))
		request.Header.Set("Authorization", "Bearer "+token)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
		admin, _, _ := store.Get(c, "admin-1")
		assert.True(t, myauth.VerifyPassword(admin.PasswordHash, "supersecret"))
	})

	t.Run("Change password requires admin token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request := httptest.NewRequest(http.MethodPost, "/api/admin/change-password",
			strings.NewReader(`{"oldPassword":"supersecret","newPassword":"evenmoresecret"}`))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})
}

func loginToken(t *testing.T, router *mux.Router) string {
	request := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"owner@example.com","password":"supersecret"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	assert.Equal(t, 200, response.Code)

	resp := LoginResponse{}
	err := json.Unmarshal(response.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp.Token
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Admin], *webService, *myuuid.MockUUIDer) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[Admin](c)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	auth := myauth.New("my-test-secret", mytime.RealNower{})

	sut := NewService(storer, auth, nower, uuider)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer, sut, uuider
}
