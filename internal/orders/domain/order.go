package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Order represents a customer purchase as known to the console.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        OrderStatus     `json:"status"`
}

// Validate ensures the order satisfies the invariants the engine relies on.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("id is required")
	}
	if o.TotalPrice.IsNegative() {
		return errors.New("total_price must not be negative")
	}
	if o.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

// WithStatus returns a copy of the order carrying the given status.
func (o Order) WithStatus(status OrderStatus) Order {
	o.Status = status
	return o
}
