package checkout

import (
	"context"
)

//go:generate mockgen -source=clients.go -package checkout -destination clients_mock.go CartFetcher,AddressKeeper,OrderPlacer

// CartFetcher reads the persisted cart of the shopper owning the bearer
// token. It is bypassed completely on the buy-now path.
type CartFetcher interface {
	FetchCart(c context.Context, bearerToken string) ([]ItemLine, error)
}

// AddressKeeper exposes the shopper's address book.
type AddressKeeper interface {
	ListAddresses(c context.Context, bearerToken string) ([]Address, error)
	CreateAddress(c context.Context, bearerToken string, fields AddressFields) error
}

// OrderPlacer turns a finished checkout into an order.
type OrderPlacer interface {
	PlaceOrder(c context.Context, bearerToken string, req OrderRequest) (string, error)
	VerifyPayment(c context.Context, bearerToken string, req VerifyRequest) (bool, string, error)
}

type OrderRequest struct {
	Items               []ItemLine `json:"items"`
	ShippingAddressText string     `json:"shippingAddress"`
	PaymentMethod       string     `json:"paymentMethod"`
	TotalAmountInCents  int64      `json:"totalAmount"`
}

type VerifyRequest struct {
	Order           OrderRequest `json:"order"`
	GatewayOrderUID string       `json:"gatewayOrderUID"`
	PaymentUID      string       `json:"paymentUID"`
	Signature       string       `json:"signature"`
}
