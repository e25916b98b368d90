package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product is referenced by an order")
)

// MaxPrice is the first price that no longer fits the price column.
var MaxPrice = decimal.NewFromInt(100_000_000)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %d has no name", p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product %d has negative price %s", p.ID, p.Price.StringFixed(2))
	}
	if p.Price.GreaterThanOrEqual(MaxPrice) {
		return fmt.Errorf("product %d has price %s, must be below %s", p.ID, p.Price.StringFixed(2), MaxPrice.String())
	}
	if p.Stock < 0 {
		return fmt.Errorf("product %d has negative stock %d", p.ID, p.Stock)
	}
	return nil
}
