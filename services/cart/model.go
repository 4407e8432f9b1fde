package cart

import (
	"time"
)

// A cart is keyed by the uid of the shopper that owns it.
type Cart struct {
	ShopperUID   string     `json:"-"`
	Items        []CartLine `json:"items"`
	CreatedAt    time.Time  `json:"-"`
	LastModified *time.Time `json:"-"`
}

type CartLine struct {
	ProductUID   string `json:"product"`
	Name         string `json:"name"`
	ImageURL     string `json:"image"`
	PriceInCents int64  `json:"price"`
	Quantity     int    `json:"quantity"`
}

func (l CartLine) TotalPriceInCents() int64 {
	return l.PriceInCents * int64(l.Quantity)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
