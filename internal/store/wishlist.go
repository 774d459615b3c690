package store

import (
	"context"
	"fmt"
	"sync"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/identity"
	"togetherbikes/internal/repository"

	"go.uber.org/zap"
)

// WishlistEngine owns the per-profile wishlist, a set of product snapshots
// keyed by product id. Like the cart it writes locally first and mirrors to
// the remote favorites collection best-effort while authenticated.
type WishlistEngine struct {
	local  LocalStore
	remote repository.FavoriteRepository
	logger *zap.Logger

	syncGuards sync.Map // profileID -> *sync.Mutex
}

// NewWishlistEngine creates a WishlistEngine
func NewWishlistEngine(local LocalStore, remote repository.FavoriteRepository, logger *zap.Logger) *WishlistEngine {
	return &WishlistEngine{local: local, remote: remote, logger: logger}
}

// Items returns the profile's wishlisted products.
func (e *WishlistEngine) Items(ctx context.Context, profileID string) ([]domain.Product, error) {
	return e.local.Wishlist(ctx, profileID)
}

// Contains reports whether the product is on the profile's wishlist.
func (e *WishlistEngine) Contains(ctx context.Context, profileID, productID string) (bool, error) {
	items, err := e.local.Wishlist(ctx, profileID)
	if err != nil {
		return false, err
	}
	for _, p := range items {
		if p.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Toggle adds the product to the wishlist if absent and removes it if
// present. It returns true when the product is on the list afterwards.
func (e *WishlistEngine) Toggle(ctx context.Context, profileID string, product *domain.Product) (bool, error) {
	items, err := e.local.Wishlist(ctx, profileID)
	if err != nil {
		return false, fmt.Errorf("failed to load wishlist: %w", err)
	}

	idx := -1
	for i, p := range items {
		if p.ID == product.ID {
			idx = i
			break
		}
	}
	adding := idx < 0

	if sess := identity.SessionFromContext(ctx); sess != nil {
		userID := sess.User.ID.String()
		if adding {
			row := domain.FavoriteRow{UserID: userID, ProductID: product.ID, Product: *product}
			if err := e.remote.Upsert(ctx, []domain.FavoriteRow{row}); err != nil {
				e.logger.Error("remote favorite upsert failed",
					zap.String("profile_id", profileID),
					zap.String("product_id", product.ID),
					zap.Error(err),
				)
			}
		} else {
			if err := e.remote.Delete(ctx, userID, product.ID); err != nil {
				e.logger.Error("remote favorite delete failed",
					zap.String("profile_id", profileID),
					zap.String("product_id", product.ID),
					zap.Error(err),
				)
			}
		}
	}

	if adding {
		items = append(items, *product)
	} else {
		items = append(items[:idx], items[idx+1:]...)
	}
	if err := e.local.SaveWishlist(ctx, profileID, items); err != nil {
		return false, fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return adding, nil
}

// Synchronize pushes every local wishlist entry to the remote favorites
// collection (duplicates are ignored remotely), then pulls the remote set and
// replaces local state with it. Since the push ran first the pulled set is
// the union of both sides. A no-op without a session; a failed pull leaves
// local state untouched. Overlapping invocations for the same profile are
// suppressed, same as the cart.
func (e *WishlistEngine) Synchronize(ctx context.Context, profileID string) error {
	sess := identity.SessionFromContext(ctx)
	if sess == nil {
		return nil
	}

	guard := e.guard(profileID)
	if !guard.TryLock() {
		return nil
	}
	defer guard.Unlock()

	userID := sess.User.ID.String()

	items, err := e.local.Wishlist(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}

	if len(items) > 0 {
		rows := make([]domain.FavoriteRow, 0, len(items))
		for _, p := range items {
			rows = append(rows, domain.FavoriteRow{UserID: userID, ProductID: p.ID, Product: p})
		}
		if err := e.remote.Upsert(ctx, rows); err != nil {
			e.logger.Error("wishlist sync push failed",
				zap.String("profile_id", profileID),
				zap.Int("items", len(rows)),
				zap.Error(err),
			)
		}
	}

	remoteRows, err := e.remote.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("wishlist sync pull failed: %w", err)
	}

	merged := make([]domain.Product, 0, len(remoteRows))
	for _, row := range remoteRows {
		merged = append(merged, row.Product)
	}
	if err := e.local.SaveWishlist(ctx, profileID, merged); err != nil {
		return fmt.Errorf("failed to persist synchronized wishlist: %w", err)
	}

	e.logger.Info("wishlist synchronized",
		zap.String("profile_id", profileID),
		zap.Int("items", len(merged)),
	)
	return nil
}

func (e *WishlistEngine) guard(profileID string) *sync.Mutex {
	v, _ := e.syncGuards.LoadOrStore(profileID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
