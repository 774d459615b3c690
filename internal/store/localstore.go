package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"togetherbikes/internal/domain"

	"github.com/redis/go-redis/v9"
)

// LocalStore is the durable per-profile state record, the server-side
// counterpart of the browser's local storage. Cart and wishlist are two
// independently keyed records; a record survives reloads and is scoped per
// profile, not per user; sign-out does not clear it.
type LocalStore interface {
	Cart(ctx context.Context, profileID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, profileID string, lines []domain.CartLine) error
	Wishlist(ctx context.Context, profileID string) ([]domain.Product, error)
	SaveWishlist(ctx context.Context, profileID string, products []domain.Product) error
}

type redisLocalStore struct {
	client *redis.Client
}

// NewRedisLocalStore creates a Redis-backed LocalStore
func NewRedisLocalStore(client *redis.Client) LocalStore {
	return &redisLocalStore{client: client}
}

func cartKey(profileID string) string     { return "cart:" + profileID }
func wishlistKey(profileID string) string { return "wishlist:" + profileID }

func (s *redisLocalStore) Cart(ctx context.Context, profileID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := s.get(ctx, cartKey(profileID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *redisLocalStore) SaveCart(ctx context.Context, profileID string, lines []domain.CartLine) error {
	return s.set(ctx, cartKey(profileID), lines)
}

func (s *redisLocalStore) Wishlist(ctx context.Context, profileID string) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.get(ctx, wishlistKey(profileID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *redisLocalStore) SaveWishlist(ctx context.Context, profileID string, products []domain.Product) error {
	return s.set(ctx, wishlistKey(profileID), products)
}

func (s *redisLocalStore) get(ctx context.Context, key string, out interface{}) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *redisLocalStore) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	// Profile state has no expiry; it lives until consumed or overwritten.
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

type memoryLocalStore struct {
	mu        sync.RWMutex
	carts     map[string][]domain.CartLine
	wishlists map[string][]domain.Product
}

// NewMemoryLocalStore creates an in-process LocalStore used when Redis is
// not configured.
func NewMemoryLocalStore() LocalStore {
	return &memoryLocalStore{
		carts:     make(map[string][]domain.CartLine),
		wishlists: make(map[string][]domain.Product),
	}
}

func (s *memoryLocalStore) Cart(ctx context.Context, profileID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartLine, len(s.carts[profileID]))
	copy(out, s.carts[profileID])
	return out, nil
}

func (s *memoryLocalStore) SaveCart(ctx context.Context, profileID string, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	s.carts[profileID] = out
	return nil
}

func (s *memoryLocalStore) Wishlist(ctx context.Context, profileID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.wishlists[profileID]))
	copy(out, s.wishlists[profileID])
	return out, nil
}

func (s *memoryLocalStore) SaveWishlist(ctx context.Context, profileID string, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(products))
	copy(out, products)
	s.wishlists[profileID] = out
	return nil
}
