package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the model for the 'orders' table.
// PaymentRef holds the payment processor's session id; a unique index on it
// is what makes order creation idempotent across duplicate confirmations.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	Reference       string          `json:"reference" db:"reference"`
	UserID          int64           `json:"userId" db:"user_id"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PaymentStatus   string          `json:"paymentStatus" db:"payment_status"`
	PaymentRef      string          `json:"-" db:"payment_ref"`
	ShippingAddress ShippingAddress `json:"shippingAddress" db:"shipping_address"`
	OrderDate       time.Time       `json:"orderDate" db:"order_date"`
}

// OrderItem is the model for the 'order_items' table. Name and price are
// snapshots taken at order time, deliberately decoupled from later product
// edits.
type OrderItem struct {
	ID           int64           `json:"id" db:"id"`
	OrderID      int64           `json:"orderId" db:"order_id"`
	ProductID    int64           `json:"productId" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	ProductPrice decimal.Decimal `json:"productPrice" db:"product_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
}
