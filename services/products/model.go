package products

import (
	"time"
)

type Product struct {
	UID          string
	Name         string
	Description  string
	PriceInCents int64
	Currency     string
	ImageURL     string
	Category     string
	Stock        int
	CreatedAt    time.Time
}

func (p Product) IsInStock() bool {
	return p.Stock > 0
}
