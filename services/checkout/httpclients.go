package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/myhttpclient"
)

// REST implementations of the collaborator interfaces, talking to the cart,
// address and order services over their public API.

type restCartFetcher struct {
	baseURL string
	client  myhttpclient.HTTPSender
}

func NewRESTCartFetcher(baseURL string) CartFetcher {
	return &restCartFetcher{
		baseURL: baseURL,
		client:  myhttpclient.New("cart"),
	}
}

func (f *restCartFetcher) FetchCart(c context.Context, bearerToken string) ([]ItemLine, error) {
	httpStatus, body, err := f.client.Send(c, http.MethodGet, f.baseURL+"/api/cart", nil, bearerToken)
	if err != nil {
		return nil, myerrors.NewCollaboratorError(err)
	}
	if httpStatus != http.StatusOK {
		return nil, myerrors.NewCollaboratorError(fmt.Errorf("cart fetch returned status %d", httpStatus))
	}

	response := struct {
		Items []ItemLine `json:"items"`
	}{}
	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, myerrors.NewCollaboratorError(fmt.Errorf("error parsing cart response: %s", err))
	}

	return response.Items, nil
}

type restAddressKeeper struct {
	baseURL string
	client  myhttpclient.HTTPSender
}

func NewRESTAddressKeeper(baseURL string) AddressKeeper {
	return &restAddressKeeper{
		baseURL: baseURL,
		client:  myhttpclient.New("address"),
	}
}

func (k *restAddressKeeper) ListAddresses(c context.Context, bearerToken string) ([]Address, error) {
	httpStatus, body, err := k.client.Send(c, http.MethodGet, k.baseURL+"/api/address", nil, bearerToken)
	if err != nil {
		return nil, myerrors.NewCollaboratorError(err)
	}
	if httpStatus != http.StatusOK {
		return nil, myerrors.NewCollaboratorError(fmt.Errorf("address fetch returned status %d", httpStatus))
	}

	response := struct {
		Addresses []Address `json:"addresses"`
	}{}
	err = json.Unmarshal(body, &response)
	if err != nil {
		return nil, myerrors.NewCollaboratorError(fmt.Errorf("error parsing address response: %s", err))
	}

	return response.Addresses, nil
}

func (k *restAddressKeeper) CreateAddress(c context.Context, bearerToken string, fields AddressFields) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	httpStatus, _, err := k.client.Send(c, http.MethodPost, k.baseURL+"/api/address", payload, bearerToken)
	if err != nil {
		return myerrors.NewCollaboratorError(err)
	}
	if httpStatus != http.StatusOK {
		return myerrors.NewCollaboratorError(fmt.Errorf("address create returned status %d", httpStatus))
	}

	return nil
}

type restOrderPlacer struct {
	baseURL string
	client  myhttpclient.HTTPSender
}

func NewRESTOrderPlacer(baseURL string) OrderPlacer {
	return &restOrderPlacer{
		baseURL: baseURL,
		client:  myhttpclient.New("order"),
	}
}

func (p *restOrderPlacer) PlaceOrder(c context.Context, bearerToken string, req OrderRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	httpStatus, body, err := p.client.Send(c, http.MethodPost, p.baseURL+"/api/order", payload, bearerToken)
	if err != nil {
		return "", myerrors.NewCollaboratorError(err)
	}
	if httpStatus != http.StatusOK {
		return "", myerrors.NewCollaboratorError(fmt.Errorf("order submission returned status %d", httpStatus))
	}

	response := struct {
		OrderUID string `json:"orderId"`
	}{}
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", myerrors.NewCollaboratorError(fmt.Errorf("error parsing order response: %s", err))
	}

	return response.OrderUID, nil
}

func (p *restOrderPlacer) VerifyPayment(c context.Context, bearerToken string, req VerifyRequest) (bool, string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return false, "", myerrors.NewInternalError(err)
	}

	httpStatus, body, err := p.client.Send(c, http.MethodPost, p.baseURL+"/api/order/verify", payload, bearerToken)
	if err != nil {
		return false, "", myerrors.NewCollaboratorError(err)
	}
	if httpStatus != http.StatusOK {
		return false, "", myerrors.NewCollaboratorError(fmt.Errorf("payment verification returned status %d", httpStatus))
	}

	response := struct {
		Verified bool   `json:"verified"`
		OrderUID string `json:"orderId"`
	}{}
	err = json.Unmarshal(body, &response)
	if err != nil {
		return false, "", myerrors.NewCollaboratorError(fmt.Errorf("error parsing verification response: %s", err))
	}

	return response.Verified, response.OrderUID, nil
}
