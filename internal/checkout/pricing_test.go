package checkout

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceCart_ComputesTotalFromAuthoritativePrices(t *testing.T) {
	lines := []CartLine{
		{ProductID: 1, Name: "Product A", UnitPrice: dec("10.00"), Stock: 5, Quantity: 2},
		{ProductID: 2, Name: "Product B", UnitPrice: dec("5.00"), Stock: 3, Quantity: 1},
	}

	items, total, err := PriceCart(lines)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, total.Equal(dec("25.00")), "expected 25.00, got %s", total)
	assert.True(t, items[0].UnitPrice.Equal(dec("10.00")))
	assert.True(t, items[1].UnitPrice.Equal(dec("5.00")))
}

func TestPriceCart_EmptyCart(t *testing.T) {
	_, _, err := PriceCart(nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPriceCart_InsufficientStock(t *testing.T) {
	lines := []CartLine{
		{ProductID: 1, Name: "Product A", UnitPrice: dec("10.00"), Stock: 5, Quantity: 2},
		{ProductID: 2, Name: "Product B", UnitPrice: dec("5.00"), Stock: 0, Quantity: 1},
	}

	_, _, err := PriceCart(lines)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(2), stockErr.ProductID)
	assert.Equal(t, "Product B", stockErr.ProductName)
}

func TestPriceCart_QuantityEqualToStockIsAllowed(t *testing.T) {
	lines := []CartLine{
		{ProductID: 1, Name: "Product A", UnitPrice: dec("10.00"), Stock: 2, Quantity: 2},
	}

	items, total, err := PriceCart(lines)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, total.Equal(dec("20.00")))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2500), MinorUnits(dec("25.00")))
	assert.Equal(t, int64(1000), MinorUnits(dec("10.00")))
	assert.Equal(t, int64(999), MinorUnits(dec("9.99")))
	assert.Equal(t, int64(0), MinorUnits(decimal.Zero))
}
