package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"togetherbikes/internal/domain"
)

// CartItemRepository defines access to the remote cart_items collection.
// Upsert and Delete must be idempotent under retry: re-upserting a row
// overwrites quantity and snapshot, deleting a missing row is not an error.
type CartItemRepository interface {
	Upsert(ctx context.Context, rows []domain.CartItemRow) error
	UpdateQuantity(ctx context.Context, userID, productID, size string, quantity int) error
	Delete(ctx context.Context, userID, productID, size string) error
	DeleteAll(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.CartItemRow, error)
}

type cartItemRepository struct {
	db *sql.DB
}

// NewCartItemRepository creates a Postgres-backed CartItemRepository
func NewCartItemRepository(db *sql.DB) CartItemRepository {
	return &cartItemRepository{db: db}
}

// Upsert inserts or overwrites rows keyed by (user_id, product_id, selected_size)
func (r *cartItemRepository) Upsert(ctx context.Context, rows []domain.CartItemRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, selected_size, quantity, product_data, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, product_id, selected_size)
		DO UPDATE SET quantity = EXCLUDED.quantity, product_data = EXCLUDED.product_data, updated_at = NOW()
	`

	for _, row := range rows {
		snapshot, err := json.Marshal(row.Product)
		if err != nil {
			return fmt.Errorf("failed to encode product snapshot: %w", err)
		}

		if _, err := r.db.ExecContext(ctx, query,
			row.UserID,
			row.ProductID,
			row.SelectedSize,
			row.Quantity,
			snapshot,
		); err != nil {
			return fmt.Errorf("failed to upsert cart item: %w", err)
		}
	}

	return nil
}

// UpdateQuantity sets the quantity of the matching row
func (r *cartItemRepository) UpdateQuantity(ctx context.Context, userID, productID, size string, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $4, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2 AND selected_size = $3
	`

	if _, err := r.db.ExecContext(ctx, query, userID, productID, size, quantity); err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	return nil
}

// Delete removes the matching row. Deleting an absent row succeeds.
func (r *cartItemRepository) Delete(ctx context.Context, userID, productID, size string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2 AND selected_size = $3`

	if _, err := r.db.ExecContext(ctx, query, userID, productID, size); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// DeleteAll removes every row belonging to the user
func (r *cartItemRepository) DeleteAll(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// ListByUser returns every cart row for the user in insertion order
func (r *cartItemRepository) ListByUser(ctx context.Context, userID string) ([]domain.CartItemRow, error) {
	query := `
		SELECT user_id, product_id, selected_size, quantity, product_data, updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY updated_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItemRow{}
	for rows.Next() {
		var item domain.CartItemRow
		var snapshot []byte
		if err := rows.Scan(
			&item.UserID,
			&item.ProductID,
			&item.SelectedSize,
			&item.Quantity,
			&snapshot,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if err := json.Unmarshal(snapshot, &item.Product); err != nil {
			return nil, fmt.Errorf("failed to decode product snapshot: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}
