package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	price1999 = decimal.RequireFromString("19.99")
	price550  = decimal.RequireFromString("5.50")
)

func collect(c *Cart) []CartLine {
	lines := []CartLine{}
	for l := range c.All() {
		lines = append(lines, l)
	}
	return lines
}

func TestNewCartLine(t *testing.T) {
	_, err := NewCartLine(1, 0, price1999, "Roses")
	assert.Error(t, err)

	_, err = NewCartLine(1, -3, price1999, "Roses")
	assert.Error(t, err)

	line, err := NewCartLine(1, 2, price1999, "Roses")
	require.NoError(t, err)
	assert.Equal(t, "39.98", line.LineTotal().StringFixed(2))
}

func TestCart(t *testing.T) {

	t.Run("add creates line and then increments it", func(t *testing.T) {
		sut := NewCart()

		sut.Add(1, price1999, "Roses")
		line := sut.Add(1, price1999, "Roses")

		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, 1, sut.Len())
	})

	t.Run("price and name stay as first added", func(t *testing.T) {
		sut := NewCart()

		sut.Add(1, price1999, "Roses")
		sut.Add(1, decimal.RequireFromString("25.00"), "Premium roses")

		line, exists := sut.Get(1)
		assert.True(t, exists)
		assert.True(t, price1999.Equal(line.UnitPrice))
		assert.Equal(t, "Roses", line.DisplayName)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		sut := NewCart()
		sut.Add(1, price1999, "Roses")
		sut.Add(2, price550, "Tulip")

		sut.Remove(1)
		once := collect(sut)
		sut.Remove(1)
		twice := collect(sut)

		assert.Equal(t, once, twice)
		assert.Len(t, twice, 1)
	})

	t.Run("decrement to zero removes the line", func(t *testing.T) {
		sut := NewCart()
		sut.Add(1, price1999, "Roses")
		sut.Add(1, price1999, "Roses")

		sut.Decrement(1)
		line, exists := sut.Get(1)
		assert.True(t, exists)
		assert.Equal(t, 1, line.Quantity)

		sut.Decrement(1)
		_, exists = sut.Get(1)
		assert.False(t, exists)
		assert.True(t, sut.IsEmpty())

		sut.Decrement(1)
		assert.True(t, sut.IsEmpty())
	})

	t.Run("lines are ordered by product id and iteration restarts", func(t *testing.T) {
		sut := NewCart()
		sut.Add(3, price550, "Lily")
		sut.Add(1, price1999, "Roses")
		sut.Add(2, price550, "Tulip")

		first := collect(sut)
		second := collect(sut)

		require.Len(t, first, 3)
		assert.Equal(t, int64(1), first[0].ProductID)
		assert.Equal(t, int64(2), first[1].ProductID)
		assert.Equal(t, int64(3), first[2].ProductID)
		assert.Equal(t, first, second)
	})

	t.Run("iteration can stop early", func(t *testing.T) {
		sut := NewCart()
		sut.Add(1, price1999, "Roses")
		sut.Add(2, price550, "Tulip")

		count := 0
		for range sut.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("clear", func(t *testing.T) {
		sut := NewCart()
		sut.Add(1, price1999, "Roses")

		sut.Clear()

		assert.True(t, sut.IsEmpty())
		assert.Empty(t, sut.ProductIDs())
	})

	t.Run("lines without quantity are dropped on construction", func(t *testing.T) {
		sut := NewCart(CartLine{ProductID: 1, Quantity: 0, UnitPrice: price1999}, CartLine{ProductID: 2, Quantity: 1, UnitPrice: price550})

		assert.Equal(t, []int64{2}, sut.ProductIDs())
	})
}
