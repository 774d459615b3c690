package transport

import (
	"errors"
	"net/http"

	"togetherbikes/internal/catalog"
	"togetherbikes/internal/middleware"
	"togetherbikes/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
}

// UpdateCartItemRequest represents the quantity update payload
type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// RemoveCartItemRequest represents the line removal payload
type RemoveCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// DrawerRequest represents the drawer toggle payload
type DrawerRequest struct {
	Open bool `json:"open"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cart    *store.CartEngine
	catalog *catalog.Store
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *store.CartEngine, cat *catalog.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: cat, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items", h.UpdateItem)
		r.Delete("/items", h.RemoveItem)
		r.Post("/drawer", h.SetDrawer)
	})
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, profileID string) {
	lines, err := h.cart.Lines(r.Context(), profileID)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	total := 0.0
	count := 0
	for _, l := range lines {
		total += l.Subtotal()
		count += l.Quantity
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items":       lines,
		"total":       total,
		"count":       count,
		"drawer_open": h.cart.DrawerOpen(profileID),
	})
}

// GetCart returns the profile's cart lines with totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	profileID, _ := middleware.GetProfileID(r.Context())
	h.respondWithCart(w, r, profileID)
}

// AddItem puts one unit of a product in the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest

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

	if err := h.cart.AddLine(r.Context(), profileID, product, req.Size); err != nil {
		if errors.Is(err, store.ErrInvalidSize) {
			middleware.RespondWithError(w, http.StatusBadRequest, "size not offered for this product")
			return
		}
		h.logger.Error("Failed to add cart line", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, r, profileID)
}

// UpdateItem sets a line's quantity; zero or less removes the line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	if err := h.cart.SetQuantity(r.Context(), profileID, req.ProductID, req.Size, req.Quantity); err != nil {
		h.logger.Error("Failed to update cart line", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, r, profileID)
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req RemoveCartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	if err := h.cart.RemoveLine(r.Context(), profileID, req.ProductID, req.Size); err != nil {
		h.logger.Error("Failed to remove cart line", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, r, profileID)
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	profileID, _ := middleware.GetProfileID(r.Context())

	if err := h.cart.Clear(r.Context(), profileID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	h.respondWithCart(w, r, profileID)
}

// SetDrawer opens or closes the cart drawer flag
func (h *CartHandler) SetDrawer(w http.ResponseWriter, r *http.Request) {
	var req DrawerRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	if req.Open {
		h.cart.OpenDrawer(profileID)
	} else {
		h.cart.CloseDrawer(profileID)
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"drawer_open": h.cart.DrawerOpen(profileID)})
}
