package transport

import (
	"net/http"

	"togetherbikes/internal/catalog"
	"togetherbikes/internal/middleware"
	"togetherbikes/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ToggleWishlistRequest represents the wishlist toggle payload
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistHandler handles HTTP requests for wishlist operations
type WishlistHandler struct {
	wishlist *store.WishlistEngine
	catalog  *catalog.Store
	logger   *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlist *store.WishlistEngine, cat *catalog.Store, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, catalog: cat, logger: logger}
}

// RegisterRoutes registers all wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Get("/", h.GetWishlist)
		r.Post("/toggle", h.Toggle)
	})
}

// GetWishlist returns the profile's wishlisted products
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	profileID, _ := middleware.GetProfileID(r.Context())

	items, err := h.wishlist.Items(r.Context(), profileID)
	if err != nil {
		h.logger.Error("Failed to load wishlist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// Toggle flips a product's wishlist membership
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleWishlistRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.ByID(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	on, err := h.wishlist.Toggle(r.Context(), profileID, product)
	if err != nil {
		h.logger.Error("Failed to toggle wishlist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": product.ID,
		"wishlisted": on,
	})
}
