package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"togetherbikes/internal/domain"
)

// OrderRepository persists completed checkouts. Orders are fire-and-forget:
// inserted once, never read back by this system.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a Postgres-backed OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Insert writes the order row with its full item snapshot
func (r *orderRepository) Insert(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, full_name, phone, city, address, postal_code,
			total_price, status, payment_method, transaction_id, items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var transactionID sql.NullString
	if order.TransactionID != "" {
		transactionID = sql.NullString{String: order.TransactionID, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.FullName,
		order.Phone,
		order.City,
		order.Address,
		order.PostalCode,
		order.TotalPrice,
		order.Status,
		order.PaymentMethod,
		transactionID,
		items,
		order.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}
