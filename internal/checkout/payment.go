package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// PaymentGateway is the provider-agnostic card processing contract. The store
// never sees card data; it only forwards the opaque tokenized payment-method
// reference collected by the provider's own widget.
type PaymentGateway interface {
	// Confirm charges the given amount against the tokenized payment method
	// and returns the provider's transaction reference.
	Confirm(ctx context.Context, paymentRef string, amount float64) (string, error)
}

// ── Sandbox Adapter ───────────────────────────────────────────────────────────
// In production, replace the stub method with the provider's confirmation API
// call authenticated by the secret key.

type sandboxGateway struct {
	secretKey string
}

// NewSandboxPaymentGateway creates a PaymentGateway that approves every
// well-formed reference without contacting a provider. References carrying a
// "declined" marker are rejected, so decline handling stays testable.
func NewSandboxPaymentGateway(secretKey string) PaymentGateway {
	return &sandboxGateway{secretKey: secretKey}
}

func (g *sandboxGateway) Confirm(ctx context.Context, paymentRef string, amount float64) (string, error) {
	if paymentRef == "" {
		return "", fmt.Errorf("payment method reference is required")
	}
	if amount <= 0 {
		return "", fmt.Errorf("amount must be greater than 0")
	}

	// ── PRODUCTION INTEGRATION POINT ──────────────────────────────────────────
	// POST /v1/payment_intents: confirm the tokenized method for the amount
	//   Headers: Authorization: Bearer <secret key>
	//   Body: { amount, currency, payment_method: paymentRef, confirm: true }
	// Map response status: succeeded -> approved, anything else -> declined
	// ──────────────────────────────────────────────────────────────────────────

	if strings.Contains(paymentRef, "declined") {
		return "", fmt.Errorf("card was declined")
	}

	txID := fmt.Sprintf("TXN-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	return txID, nil
}
