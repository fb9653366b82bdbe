package checkout

import "github.com/shopspring/decimal"

// CartLine is one row of the fresh cart ⨝ products read. Name, UnitPrice and
// Stock come from the products table; nothing here originates from the client
// except the quantity it previously stored via the cart endpoints.
type CartLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Quantity  int
}

// LineItem is a priced (product, quantity) pair ready to be charged or
// snapshotted into order_items.
type LineItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// PriceCart turns fresh cart lines into priced line items and a total.
// Prices are taken from the lines as read from the database; the caller must
// never substitute client-supplied values. Fails with ErrEmptyCart on an
// empty cart and *InsufficientStockError on the first line whose quantity
// exceeds stock.
func PriceCart(lines []CartLine) ([]LineItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, ErrEmptyCart
	}

	items := make([]LineItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.Quantity > line.Stock {
			return nil, decimal.Zero, &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: line.Name,
			}
		}

		items = append(items, LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return items, total, nil
}

// MinorUnits converts a decimal amount to minor currency units (cents),
// rounding to the nearest cent.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
