package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/identity"
	"togetherbikes/internal/repository"

	"go.uber.org/zap"
)

var ErrInvalidSize = errors.New("size not offered for this product")

// CartEngine owns the per-profile cart: an ordered line list persisted to the
// LocalStore on every change, mirrored best-effort to the remote cart_items
// collection while a session is authenticated, and reconciled once per login
// transition by Synchronize.
//
// Local mutations are optimistic: the caller sees its effect regardless of
// the remote leg, and a remote failure is logged, never surfaced.
type CartEngine struct {
	local  LocalStore
	remote repository.CartItemRepository
	logger *zap.Logger

	mu     sync.Mutex
	drawer map[string]bool

	syncGuards sync.Map // profileID -> *sync.Mutex
}

// NewCartEngine creates a CartEngine
func NewCartEngine(local LocalStore, remote repository.CartItemRepository, logger *zap.Logger) *CartEngine {
	return &CartEngine{
		local:  local,
		remote: remote,
		logger: logger,
		drawer: make(map[string]bool),
	}
}

// Lines returns the profile's current cart lines.
func (e *CartEngine) Lines(ctx context.Context, profileID string) ([]domain.CartLine, error) {
	return e.local.Cart(ctx, profileID)
}

// AddLine puts one unit of the product in the cart. An omitted size resolves
// to the product's first offered size. Re-adding an existing (product, size)
// increments its quantity; anything else appends a fresh line with quantity 1.
// The cart drawer opens as a side effect.
func (e *CartEngine) AddLine(ctx context.Context, profileID string, product *domain.Product, size string) error {
	if size == "" {
		size = product.Sizes[0]
	}
	if !product.HasSize(size) {
		return ErrInvalidSize
	}

	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	idx := findLine(lines, product.ID, size)
	var updated domain.CartLine
	if idx >= 0 {
		updated = lines[idx]
		updated.Quantity++
	} else {
		updated = domain.CartLine{Product: *product, SelectedSize: size, Quantity: 1}
	}

	// Mirror to the remote store first when authenticated, but never let a
	// remote failure roll back the local mutation.
	if sess := identity.SessionFromContext(ctx); sess != nil {
		row := domain.CartItemRow{
			UserID:       sess.User.ID.String(),
			ProductID:    product.ID,
			SelectedSize: size,
			Quantity:     updated.Quantity,
			Product:      updated.Product,
		}
		if err := e.remote.Upsert(ctx, []domain.CartItemRow{row}); err != nil {
			e.logger.Error("remote cart upsert failed",
				zap.String("profile_id", profileID),
				zap.String("product_id", product.ID),
				zap.Error(err),
			)
		}
	}

	if idx >= 0 {
		lines[idx] = updated
	} else {
		lines = append(lines, updated)
	}
	if err := e.local.SaveCart(ctx, profileID, lines); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	e.OpenDrawer(profileID)
	return nil
}

// RemoveLine drops the (product, size) line. The local removal is
// unconditional; the remote delete runs only when authenticated.
func (e *CartEngine) RemoveLine(ctx context.Context, profileID, productID, size string) error {
	if sess := identity.SessionFromContext(ctx); sess != nil {
		if err := e.remote.Delete(ctx, sess.User.ID.String(), productID, size); err != nil {
			e.logger.Error("remote cart delete failed",
				zap.String("profile_id", profileID),
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
	}

	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	out := lines[:0]
	for _, l := range lines {
		if !l.Matches(productID, size) {
			out = append(out, l)
		}
	}
	if err := e.local.SaveCart(ctx, profileID, out); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// SetQuantity sets the line's quantity to the exact given value. A quantity
// of zero or less removes the line instead; a line never exists with
// quantity below 1.
func (e *CartEngine) SetQuantity(ctx context.Context, profileID, productID, size string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveLine(ctx, profileID, productID, size)
	}

	if sess := identity.SessionFromContext(ctx); sess != nil {
		if err := e.remote.UpdateQuantity(ctx, sess.User.ID.String(), productID, size, quantity); err != nil {
			e.logger.Error("remote cart quantity update failed",
				zap.String("profile_id", profileID),
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
	}

	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	for i := range lines {
		if lines[i].Matches(productID, size) {
			lines[i].Quantity = quantity
			break
		}
	}
	if err := e.local.SaveCart(ctx, profileID, lines); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Clear empties the cart locally and, when authenticated, remotely.
func (e *CartEngine) Clear(ctx context.Context, profileID string) error {
	if sess := identity.SessionFromContext(ctx); sess != nil {
		if err := e.remote.DeleteAll(ctx, sess.User.ID.String()); err != nil {
			e.logger.Error("remote cart clear failed",
				zap.String("profile_id", profileID),
				zap.Error(err),
			)
		}
	}

	if err := e.local.SaveCart(ctx, profileID, nil); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Total returns the sum of price times quantity over all lines.
func (e *CartEngine) Total(ctx context.Context, profileID string) (float64, error) {
	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total, nil
}

// Count returns the sum of quantities over all lines.
func (e *CartEngine) Count(ctx context.Context, profileID string) (int, error) {
	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// Synchronize runs the one-shot login reconciliation: push every local line
// to the remote store (overwrite on key collision), then pull the full remote
// row set and replace local state with it. The pulled state is authoritative.
// A no-op without a session. If the pull fails, local state is left exactly
// as it was. Overlapping invocations for the same profile are suppressed so
// rapid repeat logins run exactly one push+pull cycle.
func (e *CartEngine) Synchronize(ctx context.Context, profileID string) error {
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

	lines, err := e.local.Cart(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	if len(lines) > 0 {
		rows := make([]domain.CartItemRow, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, domain.CartItemRow{
				UserID:       userID,
				ProductID:    l.Product.ID,
				SelectedSize: l.SelectedSize,
				Quantity:     l.Quantity,
				Product:      l.Product,
			})
		}
		// A line that fails to push here may not reappear in the pull below.
		// Accepted risk: the login sync is the sole reconciliation point.
		if err := e.remote.Upsert(ctx, rows); err != nil {
			e.logger.Error("cart sync push failed",
				zap.String("profile_id", profileID),
				zap.Int("lines", len(rows)),
				zap.Error(err),
			)
		}
	}

	remoteRows, err := e.remote.ListByUser(ctx, userID)
	if err != nil {
		// Pre-sync local state stays untouched when the pull fails.
		return fmt.Errorf("cart sync pull failed: %w", err)
	}

	merged := make([]domain.CartLine, 0, len(remoteRows))
	for _, row := range remoteRows {
		merged = append(merged, row.Line())
	}
	if err := e.local.SaveCart(ctx, profileID, merged); err != nil {
		return fmt.Errorf("failed to persist synchronized cart: %w", err)
	}

	e.logger.Info("cart synchronized",
		zap.String("profile_id", profileID),
		zap.Int("lines", len(merged)),
	)
	return nil
}

// OpenDrawer marks the profile's cart drawer open. The flag is transient.
func (e *CartEngine) OpenDrawer(profileID string) {
	e.mu.Lock()
	e.drawer[profileID] = true
	e.mu.Unlock()
}

// CloseDrawer marks the profile's cart drawer closed.
func (e *CartEngine) CloseDrawer(profileID string) {
	e.mu.Lock()
	delete(e.drawer, profileID)
	e.mu.Unlock()
}

// DrawerOpen reports whether the profile's cart drawer is open.
func (e *CartEngine) DrawerOpen(profileID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawer[profileID]
}

func (e *CartEngine) guard(profileID string) *sync.Mutex {
	v, _ := e.syncGuards.LoadOrStore(profileID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func findLine(lines []domain.CartLine, productID, size string) int {
	for i := range lines {
		if lines[i].Matches(productID, size) {
			return i
		}
	}
	return -1
}
