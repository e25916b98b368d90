package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct = errors.New("order line references an unknown product")
)

type Customer struct {
	Name  string
	Phone string
	Email string
}

type Address struct {
	City      string
	Street    string
	House     string
	Apartment string
	Comment   string
}

// Order is created once, together with all of its lines, and never modified afterwards.
type Order struct {
	UID            string
	// SessionUID is the session that placed the order; only that session may read it back.
	SessionUID     string `json:"-"`
	Customer       Customer
	DeliveryMethod string
	Address        Address
	ShippingCost   decimal.Decimal
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	ETAHours       int
	PreferredTime  string
	ScheduledAt    time.Time
	DeliveryNote   string
	CreatedAt      time.Time
	Lines          []OrderLine
}

type OrderLine struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
