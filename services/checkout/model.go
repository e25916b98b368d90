package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrStaleCartItem         = errors.New("cart contains a product that no longer exists")
	ErrInvalidTimeFormat     = errors.New("preferred time must be formatted as HH:MM")
	ErrInvalidDeliveryMethod = errors.New("unknown delivery method")
	ErrPersistence           = errors.New("order could not be stored")
)

// Policy holds the shop rules that drive pricing and scheduling of deliveries.
type Policy struct {
	ExpressFee   decimal.Decimal
	MinLeadHours int
	Location     *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		ExpressFee:   decimal.NewFromInt(300),
		MinLeadHours: 24,
		Location:     time.UTC,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)

// ParseDeliveryMethod treats an absent method as standard delivery.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeliveryStandard:
		return DeliveryStandard, nil
	case DeliveryExpress:
		return DeliveryExpress, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidDeliveryMethod, s)
	}
}

func (m DeliveryMethod) ShippingCost(policy Policy) decimal.Decimal {
	if m == DeliveryExpress {
		return policy.ExpressFee
	}
	return decimal.Zero
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay returns nil when no time is given.
func ParseTimeOfDay(s string) (*TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidTimeFormat, s)
	}

	return &TimeOfDay{
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type QuoteLine struct {
	ProductID   int64
	DisplayName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Quote is recomputed for every preview and submission; it is never stored on its own.
type Quote struct {
	DeliveryMethod DeliveryMethod
	Lines          []QuoteLine
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	Total          decimal.Decimal
	Delivery
}

type PreviewRequest struct {
	DeliveryMethod string `form:"deliveryMethod"`
	PreferredTime  string `form:"preferredTime"`
}

type CustomerInput struct {
	Name  string `form:"name"`
	Phone string `form:"phone"`
	Email string `form:"email"`
}

type AddressInput struct {
	City      string `form:"city"`
	Street    string `form:"street"`
	House     string `form:"house"`
	Apartment string `form:"apartment"`
	Comment   string `form:"comment"`
}

type SubmitRequest struct {
	Customer       CustomerInput `form:"customer"`
	Address        AddressInput  `form:"address"`
	DeliveryMethod string        `form:"deliveryMethod"`
	PreferredTime  string        `form:"preferredTime"`
}

func (r SubmitRequest) Validate() error {
	missing := []string{}
	if strings.TrimSpace(r.Customer.Name) == "" {
		missing = append(missing, "customer.name")
	}
	if strings.TrimSpace(r.Customer.Phone) == "" {
		missing = append(missing, "customer.phone")
	}
	if strings.TrimSpace(r.Address.Street) == "" {
		missing = append(missing, "address.street")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
