package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"togetherbikes/internal/domain"
)

// FavoriteRepository defines access to the remote favorites collection.
// Upsert ignores duplicate keys; Delete is idempotent.
type FavoriteRepository interface {
	Upsert(ctx context.Context, rows []domain.FavoriteRow) error
	Delete(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.FavoriteRow, error)
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a Postgres-backed FavoriteRepository
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Upsert inserts rows keyed by (user_id, product_id), keeping existing rows untouched
func (r *favoriteRepository) Upsert(ctx context.Context, rows []domain.FavoriteRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO favorites (user_id, product_id, product_data, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	for _, row := range rows {
		snapshot, err := json.Marshal(row.Product)
		if err != nil {
			return fmt.Errorf("failed to encode product snapshot: %w", err)
		}

		if _, err := r.db.ExecContext(ctx, query, row.UserID, row.ProductID, snapshot); err != nil {
			return fmt.Errorf("failed to upsert favorite: %w", err)
		}
	}

	return nil
}

// Delete removes the matching row. Deleting an absent row succeeds.
func (r *favoriteRepository) Delete(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// ListByUser returns every favorite row for the user in insertion order
func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.FavoriteRow, error) {
	query := `
		SELECT user_id, product_id, product_data, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.FavoriteRow{}
	for rows.Next() {
		var fav domain.FavoriteRow
		var snapshot []byte
		if err := rows.Scan(&fav.UserID, &fav.ProductID, &snapshot, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		if err := json.Unmarshal(snapshot, &fav.Product); err != nil {
			return nil, fmt.Errorf("failed to decode product snapshot: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}
