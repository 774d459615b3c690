package repository

import (
	"context"
	"sync"
	"time"

	"togetherbikes/internal/domain"

	"github.com/google/uuid"
)

// In-memory implementations used when no database is configured (mock mode).
// They satisfy the same contracts as the Postgres repositories, including
// idempotent deletes and the per-collection conflict policies, so nothing
// above this layer can tell the variants apart.

type memoryCartItemRepository struct {
	mu   sync.RWMutex
	rows map[string][]domain.CartItemRow // keyed by user id, insertion ordered
}

// NewMemoryCartItemRepository creates an in-memory CartItemRepository
func NewMemoryCartItemRepository() CartItemRepository {
	return &memoryCartItemRepository{rows: make(map[string][]domain.CartItemRow)}
}

func (r *memoryCartItemRepository) Upsert(ctx context.Context, rows []domain.CartItemRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		row.UpdatedAt = time.Now()
		existing := r.rows[row.UserID]
		replaced := false
		for i := range existing {
			if existing[i].ProductID == row.ProductID && existing[i].SelectedSize == row.SelectedSize {
				existing[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			r.rows[row.UserID] = append(existing, row)
		}
	}
	return nil
}

func (r *memoryCartItemRepository) UpdateQuantity(ctx context.Context, userID, productID, size string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[userID]
	for i := range rows {
		if rows[i].ProductID == productID && rows[i].SelectedSize == size {
			rows[i].Quantity = quantity
			rows[i].UpdatedAt = time.Now()
			break
		}
	}
	return nil
}

func (r *memoryCartItemRepository) Delete(ctx context.Context, userID, productID, size string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[userID]
	out := rows[:0]
	for _, row := range rows {
		if !(row.ProductID == productID && row.SelectedSize == size) {
			out = append(out, row)
		}
	}
	r.rows[userID] = out
	return nil
}

func (r *memoryCartItemRepository) DeleteAll(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, userID)
	return nil
}

func (r *memoryCartItemRepository) ListByUser(ctx context.Context, userID string) ([]domain.CartItemRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CartItemRow, len(r.rows[userID]))
	copy(out, r.rows[userID])
	return out, nil
}

type memoryFavoriteRepository struct {
	mu   sync.RWMutex
	rows map[string][]domain.FavoriteRow
}

// NewMemoryFavoriteRepository creates an in-memory FavoriteRepository
func NewMemoryFavoriteRepository() FavoriteRepository {
	return &memoryFavoriteRepository{rows: make(map[string][]domain.FavoriteRow)}
}

func (r *memoryFavoriteRepository) Upsert(ctx context.Context, rows []domain.FavoriteRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		exists := false
		for _, existing := range r.rows[row.UserID] {
			if existing.ProductID == row.ProductID {
				exists = true
				break
			}
		}
		// Duplicate keys are ignored, matching ON CONFLICT DO NOTHING
		if !exists {
			row.CreatedAt = time.Now()
			r.rows[row.UserID] = append(r.rows[row.UserID], row)
		}
	}
	return nil
}

func (r *memoryFavoriteRepository) Delete(ctx context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[userID]
	out := rows[:0]
	for _, row := range rows {
		if row.ProductID != productID {
			out = append(out, row)
		}
	}
	r.rows[userID] = out
	return nil
}

func (r *memoryFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.FavoriteRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FavoriteRow, len(r.rows[userID]))
	copy(out, r.rows[userID])
	return out, nil
}

type memoryOrderRepository struct {
	mu     sync.Mutex
	orders []domain.Order
}

// NewMemoryOrderRepository creates an in-memory OrderRepository
func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{}
}

func (r *memoryOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, *order)
	return nil
}

type memorySessionTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*domain.SessionToken // keyed by token string
}

// NewMemorySessionTokenRepository creates an in-memory SessionTokenRepository
func NewMemorySessionTokenRepository() SessionTokenRepository {
	return &memorySessionTokenRepository{tokens: make(map[string]*domain.SessionToken)}
}

func (r *memorySessionTokenRepository) Create(ctx context.Context, token *domain.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.tokens[token.Token] = &t
	return nil
}

func (r *memorySessionTokenRepository) FindByToken(ctx context.Context, token string) (*domain.SessionToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.tokens[token]
	if !exists {
		return nil, ErrSessionTokenNotFound
	}
	if stored.Revoked {
		return nil, ErrSessionTokenRevoked
	}
	t := *stored
	return &t, nil
}

func (r *memorySessionTokenRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, exists := r.tokens[token]; exists {
		stored.Revoked = true
	}
	return nil
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email
}

// NewMemoryUserRepository creates an in-memory UserRepository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrUserAlreadyExists
	}
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}
