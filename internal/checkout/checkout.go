package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/identity"
	"togetherbikes/internal/repository"
	"togetherbikes/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart            = errors.New("cannot check out an empty cart")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// PaymentError marks a failed or declined card confirmation. The cart is left
// untouched so the customer can retry.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return fmt.Sprintf("payment failed: %v", e.Err) }
func (e *PaymentError) Unwrap() error { return e.Err }

// OrderPersistError marks a failed order insert. The cart is left untouched.
type OrderPersistError struct {
	Err error
}

func (e *OrderPersistError) Error() string { return fmt.Sprintf("failed to save order: %v", e.Err) }
func (e *OrderPersistError) Unwrap() error { return e.Err }

var validate = validator.New()

// Submission carries the shipping form and the chosen payment method.
// PaymentRef is the opaque tokenized payment-method reference and is only
// consulted for card payments.
type Submission struct {
	FullName   string `validate:"required,min=2,max=100"`
	Phone      string `validate:"required,min=6,max=30"`
	City       string `validate:"required,min=2,max=80"`
	Address    string `validate:"required,min=4,max=200"`
	PostalCode string `validate:"required,min=3,max=12"`
	Method     domain.PaymentMethod
	PaymentRef string
}

// Service turns a profile's cart into a write-once order. Cash-on-delivery
// orders are inserted as pending; card orders are confirmed through the
// payment gateway first and inserted as paid. The cart is cleared only after
// the insert succeeds.
type Service struct {
	cart     *store.CartEngine
	orders   repository.OrderRepository
	payments PaymentGateway
	logger   *zap.Logger
}

// NewService creates a checkout Service
func NewService(cart *store.CartEngine, orders repository.OrderRepository, payments PaymentGateway, logger *zap.Logger) *Service {
	return &Service{cart: cart, orders: orders, payments: payments, logger: logger}
}

// Submit validates the submission, charges the card when applicable, inserts
// the order and clears the cart. Every failure before the insert leaves the
// cart exactly as it was.
func (s *Service) Submit(ctx context.Context, profileID string, sub Submission) (*domain.Order, error) {
	if err := validate.Struct(sub); err != nil {
		return nil, err
	}
	if sub.Method != domain.PaymentCOD && sub.Method != domain.PaymentCard {
		return nil, ErrUnknownPaymentMethod
	}

	lines, err := s.cart.Lines(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}

	order := &domain.Order{
		ID:            uuid.New(),
		FullName:      sub.FullName,
		Phone:         sub.Phone,
		City:          sub.City,
		Address:       sub.Address,
		PostalCode:    sub.PostalCode,
		TotalPrice:    total,
		Status:        domain.OrderPending,
		PaymentMethod: sub.Method,
		Items:         lines,
		CreatedAt:     time.Now(),
	}
	if sess := identity.SessionFromContext(ctx); sess != nil {
		id := sess.User.ID
		order.UserID = &id
	}

	if sub.Method == domain.PaymentCard {
		txID, err := s.payments.Confirm(ctx, sub.PaymentRef, total)
		if err != nil {
			s.logger.Warn("card confirmation failed",
				zap.String("profile_id", profileID),
				zap.Error(err),
			)
			return nil, &PaymentError{Err: err}
		}
		order.Status = domain.OrderPaid
		order.TransactionID = txID
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.logger.Error("order insert failed",
			zap.String("profile_id", profileID),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, &OrderPersistError{Err: err}
	}

	// The order is durable; clearing the cart is best-effort from here on.
	if err := s.cart.Clear(ctx, profileID); err != nil {
		s.logger.Error("failed to clear cart after checkout",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Float64("total", order.TotalPrice),
	)
	return order, nil
}
