package store

import (
	"context"
	"time"

	"togetherbikes/internal/identity"

	"go.uber.org/zap"
)

const syncTimeout = 30 * time.Second

// SyncBridge listens for auth-state transitions and triggers the login
// reconciliation: on every SIGNED_IN event it synchronizes the cart first and
// the wishlist second for the profile the transition happened on. Other
// event types are ignored.
type SyncBridge struct {
	cart     *CartEngine
	wishlist *WishlistEngine
	logger   *zap.Logger

	unsubscribe func()
}

// NewSyncBridge creates a SyncBridge
func NewSyncBridge(cart *CartEngine, wishlist *WishlistEngine, logger *zap.Logger) *SyncBridge {
	return &SyncBridge{cart: cart, wishlist: wishlist, logger: logger}
}

// Start subscribes the bridge to the gateway's auth events. Events are
// handled synchronously in the gateway's delivery goroutine.
func (b *SyncBridge) Start(gateway identity.Gateway) {
	b.unsubscribe = gateway.Subscribe(b.handle)
}

// Stop detaches the bridge from the gateway.
func (b *SyncBridge) Stop() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *SyncBridge) handle(ev identity.Event) {
	if ev.Type != identity.EventSignedIn || ev.Session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	ctx = identity.WithSession(ctx, ev.Session)

	if err := b.cart.Synchronize(ctx, ev.ProfileID); err != nil {
		b.logger.Error("cart sync on login failed",
			zap.String("profile_id", ev.ProfileID),
			zap.Error(err),
		)
	}
	if err := b.wishlist.Synchronize(ctx, ev.ProfileID); err != nil {
		b.logger.Error("wishlist sync on login failed",
			zap.String("profile_id", ev.ProfileID),
			zap.Error(err),
		)
	}
}
