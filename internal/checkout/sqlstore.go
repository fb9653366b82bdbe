package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// SQLStore implements Store on a MySQL connection pool.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) CartLines(ctx context.Context, userID int64) ([]CartLine, error) {
	query := `
		SELECT c.product_id, p.name, p.price, p.stock, c.quantity
		FROM cart c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = ?`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []CartLine
	for rows.Next() {
		var line CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.UnitPrice, &line.Stock, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}

	return lines, nil
}

func (s *SQLStore) OrderIDByPaymentRef(ctx context.Context, paymentRef string) (int64, error) {
	var orderID int64
	err := s.DB.QueryRowContext(ctx, "SELECT id FROM orders WHERE payment_ref = ?", paymentRef).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("lookup order by payment ref: %w", err)
	}
	return orderID, nil
}

// CreateOrder runs the whole materialization as one transaction: order
// header, item snapshots, stock decrements, cart clear. A failure anywhere
// rolls everything back, so there is no state where the order exists but the
// cart survived.
func (s *SQLStore) CreateOrder(ctx context.Context, order *NewOrder) (int64, error) {
	shippingJSON, err := json.Marshal(order.Shipping)
	if err != nil {
		return 0, fmt.Errorf("marshal shipping address: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	orderQuery := `
		INSERT INTO orders (reference, user_id, total_amount, payment_status, payment_ref, shipping_address, order_date)
		VALUES (?, ?, ?, 'completed', ?, ?, ?)`
	result, err := tx.ExecContext(ctx, orderQuery,
		order.Reference, order.UserID, order.Total, order.PaymentRef, shippingJSON, now)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return 0, ErrDuplicatePaymentRef
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read order id: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity)
		VALUES (?, ?, ?, ?, ?)`
	stockQuery := "UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?"
	// Clear per snapshotted product, not the whole cart: a line added
	// concurrently after the fresh read is not part of this order and must
	// survive for the next checkout.
	clearQuery := "DELETE FROM cart WHERE user_id = ? AND product_id = ?"

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			orderID, item.ProductID, item.Name, item.UnitPrice, item.Quantity); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}

		res, err := tx.ExecContext(ctx, stockQuery, item.Quantity, now, item.ProductID, item.Quantity)
		if err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
		if affected == 0 {
			// Stock moved between the fresh read and this commit.
			return 0, &InsufficientStockError{ProductID: item.ProductID, ProductName: item.Name}
		}

		if _, err := tx.ExecContext(ctx, clearQuery, order.UserID, item.ProductID); err != nil {
			return 0, fmt.Errorf("clear cart line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order transaction: %w", err)
	}

	return orderID, nil
}

func (s *SQLStore) RecordSession(ctx context.Context, rec *SessionRecord) error {
	now := time.Now()
	query := `
		INSERT INTO checkout_sessions (session_id, user_id, amount, status, created_at, updated_at)
		VALUES (?, ?, ?, 'pending', ?, ?)`
	if _, err := s.DB.ExecContext(ctx, query, rec.SessionID, rec.UserID, rec.Amount, now, now); err != nil {
		return fmt.Errorf("record checkout session: %w", err)
	}
	return nil
}

func (s *SQLStore) CompleteSession(ctx context.Context, sessionID string) error {
	query := "UPDATE checkout_sessions SET status = 'completed', updated_at = ? WHERE session_id = ?"
	result, err := s.DB.ExecContext(ctx, query, time.Now(), sessionID)
	if err != nil {
		return fmt.Errorf("complete checkout session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete checkout session: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SQLStore) MarkAbandonedSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE checkout_sessions
		SET status = 'abandoned', updated_at = ?
		WHERE status = 'pending' AND created_at < ?`
	result, err := s.DB.ExecContext(ctx, query, time.Now(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark abandoned sessions: %w", err)
	}
	return result.RowsAffected()
}
