package transport

import (
	"net/http"

	"togetherbikes/internal/catalog"
	"togetherbikes/internal/domain"
	"togetherbikes/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves the static product catalog and informational content
type CatalogHandler struct {
	catalog *catalog.Store
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat *catalog.Store, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, logger: logger}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{slug}", h.GetProduct)
	r.Get("/api/services", h.ListServices)
	r.Get("/api/rentals", h.ListRentals)
	r.Get("/api/tours", h.ListTours)
	r.Get("/api/legal/{key}", h.GetLegal)
	r.Get("/api/info", h.GetInfo)
}

// ListProducts handles filtered product listings
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.Filter{
		Category: domain.Category(q.Get("category")),
		Brand:    domain.Brand(q.Get("brand")),
		SaleOnly: q.Get("sale") == "true",
		Query:    q.Get("q"),
		Sort:     catalog.SortKey(q.Get("sort")),
	}

	products := h.catalog.List(filter)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles single product lookup by slug
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.BySlug(slug)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListServices returns the workshop price list
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": h.catalog.Services(),
	})
}

// ListRentals returns the rental plans
func (h *CatalogHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"rentals": h.catalog.Rentals(),
	})
}

// ListTours returns the guided tour packages
func (h *CatalogHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tours": h.catalog.Tours(),
	})
}

// GetLegal returns one legal document by key
func (h *CatalogHandler) GetLegal(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	doc, ok := h.catalog.Legal(key)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "document not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, doc)
}

// GetInfo returns company contact details and delivery terms
func (h *CatalogHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"company":  h.catalog.Company(),
		"delivery": h.catalog.Delivery(),
	})
}
