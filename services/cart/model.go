package cart

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CartLine is a product in the cart with the price and name it had when it was first added.
type CartLine struct {
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	DisplayName string
}

func NewCartLine(productID int64, quantity int, unitPrice decimal.Decimal, displayName string) (CartLine, error) {
	if quantity < 1 {
		return CartLine{}, fmt.Errorf("quantity of product %d must be at least 1, got %d", productID, quantity)
	}
	return CartLine{
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		DisplayName: displayName,
	}, nil
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart never holds a line with quantity zero.
type Cart struct {
	lines map[int64]CartLine
}

func NewCart(lines ...CartLine) *Cart {
	c := &Cart{
		lines: map[int64]CartLine{},
	}
	for _, l := range lines {
		if l.Quantity >= 1 {
			c.lines[l.ProductID] = l
		}
	}
	return c
}

// Add increments the quantity of an existing line, or creates a new one
// with the given price and name.
func (c *Cart) Add(productID int64, unitPrice decimal.Decimal, displayName string) CartLine {
	line, exists := c.lines[productID]
	if exists {
		line.Quantity++
	} else {
		line = CartLine{
			ProductID:   productID,
			Quantity:    1,
			UnitPrice:   unitPrice,
			DisplayName: displayName,
		}
	}
	c.lines[productID] = line
	return line
}

func (c *Cart) Remove(productID int64) {
	delete(c.lines, productID)
}

// Decrement lowers the quantity by one and drops the line when it reaches zero.
func (c *Cart) Decrement(productID int64) {
	line, exists := c.lines[productID]
	if !exists {
		return
	}
	if line.Quantity <= 1 {
		delete(c.lines, productID)
		return
	}
	line.Quantity--
	c.lines[productID] = line
}

func (c *Cart) Clear() {
	clear(c.lines)
}

func (c *Cart) Get(productID int64) (CartLine, bool) {
	line, exists := c.lines[productID]
	return line, exists
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// All yields the lines ordered by product id. Every call starts over.
func (c *Cart) All() iter.Seq[CartLine] {
	return func(yield func(CartLine) bool) {
		for _, id := range c.ProductIDs() {
			if !yield(c.lines[id]) {
				return
			}
		}
	}
}

func (c *Cart) ProductIDs() []int64 {
	return slices.Sorted(maps.Keys(c.lines))
}
