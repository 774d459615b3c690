package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"togetherbikes/internal/catalog"
	"togetherbikes/internal/checkout"
	"togetherbikes/internal/identity"
	"togetherbikes/internal/middleware"
	"togetherbikes/internal/repository"
	"togetherbikes/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRouter wires the full mock-mode stack behind a chi router, the same
// shape the server composes in production.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	cat := catalog.NewStore()
	local := store.NewMemoryLocalStore()
	cartRepo := repository.NewMemoryCartItemRepository()
	favRepo := repository.NewMemoryFavoriteRepository()
	orderRepo := repository.NewMemoryOrderRepository()

	gateway := identity.NewMemoryGateway(logger)
	cart := store.NewCartEngine(local, cartRepo, logger)
	wishlist := store.NewWishlistEngine(local, favRepo, logger)

	bridge := store.NewSyncBridge(cart, wishlist, logger)
	bridge.Start(gateway)
	t.Cleanup(bridge.Stop)

	checkoutSvc := checkout.NewService(cart, orderRepo, checkout.NewSandboxPaymentGateway("sk_test"), logger)

	r := chi.NewRouter()
	r.Use(middleware.AuthMiddleware(gateway, logger))

	NewCatalogHandler(cat, logger).RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireProfile())
		NewAuthHandler(gateway, logger).RegisterRoutes(r)
		NewCartHandler(cart, cat, logger).RegisterRoutes(r)
		NewWishlistHandler(wishlist, cat, logger).RegisterRoutes(r)
		NewCheckoutHandler(checkoutSvc, logger).RegisterRoutes(r)
	})

	return r
}

type testClient struct {
	t       *testing.T
	handler http.Handler
	profile string
	token   string
}

func newTestClient(t *testing.T, handler http.Handler) *testClient {
	return &testClient{t: t, handler: handler, profile: "profile-test"}
}

func (c *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ProfileHeader, c.profile)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *testClient) decode(w *httptest.ResponseRecorder, out interface{}) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out))
}
