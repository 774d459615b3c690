package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod tags how an order is paid
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

// OrderStatus is the lifecycle state recorded on an order
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
)

// Order is a write-once record of a completed checkout. It is inserted once
// and never read back by this system.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	UserID        *uuid.UUID    `json:"user_id"` // nil for guest checkout
	FullName      string        `json:"full_name"`
	Phone         string        `json:"phone"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	PostalCode    string        `json:"postal_code"`
	TotalPrice    float64       `json:"total_price"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Items         []CartLine    `json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
}
