package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Order Retrieval Handlers ---
//
// Orders are created only by the checkout confirmation path; these handlers
// are read-only views over the materialized rows.
//

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner, o *models.Order) error {
	var shippingJSON []byte
	if err := row.Scan(&o.ID, &o.Reference, &o.UserID, &o.TotalAmount,
		&o.PaymentStatus, &shippingJSON, &o.OrderDate); err != nil {
		return err
	}
	return json.Unmarshal(shippingJSON, &o.ShippingAddress)
}

// GetMyOrders is the handler for GET /v1/orders. Newest first, items included
// so the order history renders without a second round trip.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	query := `
		SELECT id, reference, user_id, total_amount, payment_status, shipping_address, order_date
		FROM orders
		WHERE user_id = ?
		ORDER BY order_date DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order"})
			return
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	// One items query per order keeps the SQL simple; order history pages
	// are short.
	payload := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items, err := h.orderItems(o.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
			return
		}
		payload = append(payload, gin.H{"order": o, "items": items})
	}

	c.JSON(http.StatusOK, gin.H{"orders": payload})
}

// GetOrderDetails is the handler for GET /v1/orders/:id.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)
	orderID := c.Param("id")

	var o models.Order
	query := `
		SELECT id, reference, user_id, total_amount, payment_status, shipping_address, order_date
		FROM orders
		WHERE id = ? AND user_id = ?`
	err := scanOrder(h.DB.QueryRow(query, orderID, userID), &o)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	items, err := h.orderItems(o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": o,
		"items": items,
	})
}

func (h *Handlers) orderItems(orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity
		FROM order_items
		WHERE order_id = ?`

	rows, err := h.DB.Query(query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.ProductPrice, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
