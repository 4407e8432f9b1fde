package address

import (
	"fmt"
	"time"
)

type Address struct {
	UID          string     `json:"uid"`
	ShopperUID   string     `json:"-"`
	Label        string     `json:"label" validate:"required"`
	Street       string     `json:"street" validate:"required"`
	City         string     `json:"city" validate:"required"`
	State        string     `json:"state" validate:"required"`
	PostalCode   string     `json:"postalCode" validate:"required"`
	Country      string     `json:"country" validate:"required"`
	Phone        string     `json:"phone" validate:"required"`
	CreatedAt    time.Time  `json:"-"`
	LastModified *time.Time `json:"-"`
}

// Text renders the address the way it is shown and stored on orders.
func (a Address) Text() string {
	return fmt.Sprintf("%s, %s, %s, %s - %s, %s", a.Label, a.Street, a.City, a.State, a.PostalCode, a.Country)
}
