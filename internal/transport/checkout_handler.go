package transport

import (
	"errors"
	"net/http"

	"togetherbikes/internal/checkout"
	"togetherbikes/internal/domain"
	"togetherbikes/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CheckoutRequest represents the order submission payload
type CheckoutRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	City       string `json:"city" validate:"required"`
	Address    string `json:"address" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Method     string `json:"payment_method" validate:"required,oneof=cod card"`
	PaymentRef string `json:"payment_ref"`
}

// OrderResponse represents a placed order
type OrderResponse struct {
	OrderID       string  `json:"order_id"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id,omitempty"`
	TotalPrice    float64 `json:"total_price"`
}

// CheckoutHandler handles HTTP requests for order submission
type CheckoutHandler struct {
	checkout *checkout.Service
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(svc *checkout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, logger: logger}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Submit)
}

// Submit places an order from the profile's cart
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	order, err := h.checkout.Submit(r.Context(), profileID, checkout.Submission{
		FullName:   req.FullName,
		Phone:      req.Phone,
		City:       req.City,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		Method:     domain.PaymentMethod(req.Method),
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		var paymentErr *checkout.PaymentError
		var persistErr *checkout.OrderPersistError
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &validationErrs):
			middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(validationErrs))
		case errors.Is(err, checkout.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, "cannot check out an empty cart")
		case errors.Is(err, checkout.ErrUnknownPaymentMethod):
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown payment method")
		case errors.As(err, &paymentErr):
			middleware.RespondWithError(w, http.StatusPaymentRequired, "payment was declined")
		case errors.As(err, &persistErr):
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to save order, please try again")
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{
		OrderID:       order.ID.String(),
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		TransactionID: order.TransactionID,
		TotalPrice:    order.TotalPrice,
	})
}
