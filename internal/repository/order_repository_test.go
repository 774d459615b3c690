package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"togetherbikes/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *domain.Order {
	product := snapshotProduct("bike-a", 799)
	return &domain.Order{
		ID:            uuid.New(),
		FullName:      "Maria Petrova",
		Phone:         "+359888123456",
		City:          "Varna",
		Address:       "15 Primorski Blvd",
		PostalCode:    "9000",
		TotalPrice:    1598,
		Status:        domain.OrderPending,
		PaymentMethod: domain.PaymentCOD,
		Items: []domain.CartLine{
			{Product: product, SelectedSize: "M", Quantity: 2},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestOrderRepository_InsertGuestOrder(t *testing.T) {
	repo := NewOrderRepository(testDB)
	ctx := context.Background()

	order := testOrder()
	require.NoError(t, repo.Insert(ctx, order))

	var (
		userID        sql.NullString
		status        string
		transactionID sql.NullString
		totalPrice    float64
	)
	err := testDB.QueryRow(
		"SELECT user_id, status, transaction_id, total_price FROM orders WHERE id = $1",
		order.ID,
	).Scan(&userID, &status, &transactionID, &totalPrice)
	require.NoError(t, err)

	assert.False(t, userID.Valid)
	assert.Equal(t, "pending", status)
	assert.False(t, transactionID.Valid)
	assert.InDelta(t, 1598, totalPrice, 0.001)
}

func TestOrderRepository_InsertPaidOrderForUser(t *testing.T) {
	repo := NewOrderRepository(testDB)
	ctx := context.Background()

	accountID := uuid.New()
	order := testOrder()
	order.UserID = &accountID
	order.Status = domain.OrderPaid
	order.PaymentMethod = domain.PaymentCard
	order.TransactionID = "TXN-20260901120000-0042"

	require.NoError(t, repo.Insert(ctx, order))

	var (
		userID        uuid.UUID
		transactionID string
		items         []byte
	)
	err := testDB.QueryRow(
		"SELECT user_id, transaction_id, items FROM orders WHERE id = $1",
		order.ID,
	).Scan(&userID, &transactionID, &items)
	require.NoError(t, err)

	assert.Equal(t, accountID, userID)
	assert.Equal(t, "TXN-20260901120000-0042", transactionID)
	assert.Contains(t, string(items), `"selected_size":"M"`)
}
