package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/identity"
	"togetherbikes/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProduct(id string, price float64, sizes ...string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Slug:     id,
		Brand:    domain.BrandOrbea,
		Category: domain.CategoryMountain,
		Name:     "Test " + id,
		Price:    price,
		Sizes:    sizes,
		InStock:  true,
	}
}

func authedContext(t *testing.T) (context.Context, string) {
	t.Helper()
	sess := &identity.Session{
		Token: "test-token",
		User:  domain.User{ID: uuid.New(), Email: "rider@example.com"},
	}
	return identity.WithSession(context.Background(), sess), sess.User.ID.String()
}

// flakyCartRepo wraps a real repository and fails selected operations on
// demand, so reconciliation error paths can be exercised.
type flakyCartRepo struct {
	repository.CartItemRepository
	failUpsert bool
	failList   bool

	upsertCalls atomic.Int32
	listCalls   atomic.Int32
	listGate    chan struct{} // when set, ListByUser blocks until closed
}

func (r *flakyCartRepo) Upsert(ctx context.Context, rows []domain.CartItemRow) error {
	r.upsertCalls.Add(1)
	if r.failUpsert {
		return errors.New("upstream unavailable")
	}
	return r.CartItemRepository.Upsert(ctx, rows)
}

func (r *flakyCartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItemRow, error) {
	r.listCalls.Add(1)
	if r.listGate != nil {
		<-r.listGate
	}
	if r.failList {
		return nil, errors.New("upstream unavailable")
	}
	return r.CartItemRepository.ListByUser(ctx, userID)
}

func newTestCartEngine() (*CartEngine, *flakyCartRepo) {
	repo := &flakyCartRepo{CartItemRepository: repository.NewMemoryCartItemRepository()}
	return NewCartEngine(NewMemoryLocalStore(), repo, zap.NewNop()), repo
}

func TestCartEngine_GuestLifecycle(t *testing.T) {
	engine, repo := newTestCartEngine()
	ctx := context.Background()
	bike := testProduct("bike-1", 2400, "S", "M", "L")
	helmet := testProduct("helmet-1", 180, "M")

	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))
	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))
	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "L"))
	require.NoError(t, engine.AddLine(ctx, "profile-a", helmet, ""))

	lines, err := engine.Lines(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "L", lines[1].SelectedSize)
	assert.Equal(t, "M", lines[2].SelectedSize, "omitted size resolves to the first offered one")

	count, err := engine.Count(ctx, "profile-a")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	total, err := engine.Total(ctx, "profile-a")
	require.NoError(t, err)
	assert.InDelta(t, 2400*3+180, total, 0.001)

	require.NoError(t, engine.RemoveLine(ctx, "profile-a", "bike-1", "L"))
	require.NoError(t, engine.SetQuantity(ctx, "profile-a", "bike-1", "M", 5))

	lines, err = engine.Lines(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 5, lines[0].Quantity)

	require.NoError(t, engine.Clear(ctx, "profile-a"))
	lines, err = engine.Lines(ctx, "profile-a")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Zero(t, repo.upsertCalls.Load(), "guest mutations never touch the remote store")
}

func TestCartEngine_AddLineRejectsUnknownSize(t *testing.T) {
	engine, _ := newTestCartEngine()
	bike := testProduct("bike-1", 2400, "S", "M")

	err := engine.AddLine(context.Background(), "profile-a", bike, "XXL")
	assert.ErrorIs(t, err, ErrInvalidSize)

	lines, err := engine.Lines(context.Background(), "profile-a")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartEngine_AddLineOpensDrawer(t *testing.T) {
	engine, _ := newTestCartEngine()
	bike := testProduct("bike-1", 2400, "M")

	assert.False(t, engine.DrawerOpen("profile-a"))
	require.NoError(t, engine.AddLine(context.Background(), "profile-a", bike, "M"))
	assert.True(t, engine.DrawerOpen("profile-a"))
	assert.False(t, engine.DrawerOpen("profile-b"))

	engine.CloseDrawer("profile-a")
	assert.False(t, engine.DrawerOpen("profile-a"))
}

func TestCartEngine_RemoteFailureKeepsLocalMutation(t *testing.T) {
	engine, repo := newTestCartEngine()
	repo.failUpsert = true
	ctx, _ := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")

	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))

	lines, err := engine.Lines(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int32(1), repo.upsertCalls.Load())
}

func TestCartEngine_AuthenticatedMutationsMirrorRemotely(t *testing.T) {
	engine, repo := newTestCartEngine()
	ctx, userID := authedContext(t)
	bike := testProduct("bike-1", 2400, "S", "M")

	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))
	require.NoError(t, engine.SetQuantity(ctx, "profile-a", "bike-1", "M", 3))

	rows, err := repo.CartItemRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.Equal(t, "M", rows[0].SelectedSize)

	require.NoError(t, engine.RemoveLine(ctx, "profile-a", "bike-1", "M"))
	rows, err = repo.CartItemRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCartEngine_SynchronizeIsNoOpForGuests(t *testing.T) {
	engine, repo := newTestCartEngine()
	bike := testProduct("bike-1", 2400, "M")
	require.NoError(t, engine.AddLine(context.Background(), "profile-a", bike, "M"))

	require.NoError(t, engine.Synchronize(context.Background(), "profile-a"))

	assert.Zero(t, repo.upsertCalls.Load())
	assert.Zero(t, repo.listCalls.Load())
}

func TestCartEngine_SynchronizeMergesGuestCartIntoAccount(t *testing.T) {
	engine, repo := newTestCartEngine()
	ctx, userID := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")
	jersey := testProduct("jersey-1", 90, "L")

	// Account already holds one row with a different quantity for the same
	// key, plus a row the guest never saw.
	require.NoError(t, repo.CartItemRepository.Upsert(ctx, []domain.CartItemRow{
		{UserID: userID, ProductID: "bike-1", SelectedSize: "M", Quantity: 7, Product: *bike},
		{UserID: userID, ProductID: "jersey-1", SelectedSize: "L", Quantity: 1, Product: *jersey},
	}))

	// Guest accumulated a colliding line before logging in.
	guestCtx := context.Background()
	require.NoError(t, engine.AddLine(guestCtx, "profile-a", bike, "M"))
	require.NoError(t, engine.AddLine(guestCtx, "profile-a", bike, "M"))

	require.NoError(t, engine.Synchronize(ctx, "profile-a"))

	// The local push overwrote the colliding account row, and the pull
	// brought back the full account set.
	lines, err := engine.Lines(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity, "local quantity wins the key collision")
	assert.Equal(t, "jersey-1", lines[1].Product.ID, "account-only rows appear after sync")

	rows, err := repo.CartItemRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestCartEngine_SynchronizePullFailureLeavesLocalUntouched(t *testing.T) {
	engine, repo := newTestCartEngine()
	repo.failList = true
	ctx, _ := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")

	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))
	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))

	err := engine.Synchronize(ctx, "profile-a")
	require.Error(t, err)

	lines, lerr := engine.Lines(ctx, "profile-a")
	require.NoError(t, lerr)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartEngine_OverlappingSynchronizeRunsOnce(t *testing.T) {
	engine, repo := newTestCartEngine()
	repo.listGate = make(chan struct{})
	ctx, _ := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")
	require.NoError(t, engine.AddLine(ctx, "profile-a", bike, "M"))
	upsertsBefore := repo.upsertCalls.Load()

	done := make(chan error, 1)
	go func() { done <- engine.Synchronize(ctx, "profile-a") }()

	// Wait for the first cycle to reach the blocked pull, then fire the
	// second invocation; it must return immediately without a second cycle.
	require.Eventually(t, func() bool { return repo.listCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, engine.Synchronize(ctx, "profile-a"))

	close(repo.listGate)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), repo.listCalls.Load())
	assert.Equal(t, upsertsBefore+1, repo.upsertCalls.Load())
}

func TestProperty_RepeatedAddLineAccumulatesQuantity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same line n times yields one line with quantity n", prop.ForAll(
		func(n int) bool {
			engine, _ := newTestCartEngine()
			ctx := context.Background()
			bike := testProduct("bike-1", 1500, "M", "L")

			for i := 0; i < n; i++ {
				if err := engine.AddLine(ctx, "profile-a", bike, "M"); err != nil {
					t.Logf("FAIL: AddLine returned error: %v", err)
					return false
				}
			}

			lines, err := engine.Lines(ctx, "profile-a")
			if err != nil {
				t.Logf("FAIL: Lines returned error: %v", err)
				return false
			}
			if len(lines) != 1 {
				t.Logf("FAIL: Expected 1 line, got %d", len(lines))
				return false
			}
			if lines[0].Quantity != n {
				t.Logf("FAIL: Expected quantity %d, got %d", n, lines[0].Quantity)
				return false
			}
			return true
		},
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RemoveThenAddResetsQuantity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("removing a line and re-adding it yields quantity 1", prop.ForAll(
		func(n int) bool {
			engine, _ := newTestCartEngine()
			ctx := context.Background()
			bike := testProduct("bike-1", 1500, "M")

			for i := 0; i < n; i++ {
				if err := engine.AddLine(ctx, "profile-a", bike, "M"); err != nil {
					t.Logf("FAIL: AddLine returned error: %v", err)
					return false
				}
			}
			if err := engine.RemoveLine(ctx, "profile-a", "bike-1", "M"); err != nil {
				t.Logf("FAIL: RemoveLine returned error: %v", err)
				return false
			}
			if err := engine.AddLine(ctx, "profile-a", bike, "M"); err != nil {
				t.Logf("FAIL: AddLine returned error: %v", err)
				return false
			}

			lines, err := engine.Lines(ctx, "profile-a")
			if err != nil {
				t.Logf("FAIL: Lines returned error: %v", err)
				return false
			}
			if len(lines) != 1 || lines[0].Quantity != 1 {
				t.Logf("FAIL: Expected a single line with quantity 1, got %+v", lines)
				return false
			}
			return true
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SetQuantityZeroEqualsRemove(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("setting quantity to zero or below removes the line", prop.ForAll(
		func(n int, q int) bool {
			engine, _ := newTestCartEngine()
			ctx := context.Background()
			bike := testProduct("bike-1", 1500, "M")

			for i := 0; i < n; i++ {
				if err := engine.AddLine(ctx, "profile-a", bike, "M"); err != nil {
					t.Logf("FAIL: AddLine returned error: %v", err)
					return false
				}
			}
			if err := engine.SetQuantity(ctx, "profile-a", "bike-1", "M", q); err != nil {
				t.Logf("FAIL: SetQuantity returned error: %v", err)
				return false
			}

			lines, err := engine.Lines(ctx, "profile-a")
			if err != nil {
				t.Logf("FAIL: Lines returned error: %v", err)
				return false
			}
			if len(lines) != 0 {
				t.Logf("FAIL: Expected empty cart after SetQuantity(%d), got %d lines", q, len(lines))
				return false
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.IntRange(-5, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TotalIsSumOfLineSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cart total equals the sum of price times quantity per line", prop.ForAll(
		func(prices []float64, quantities []int) bool {
			engine, _ := newTestCartEngine()
			ctx := context.Background()

			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}

			var want float64
			for i := 0; i < n; i++ {
				p := testProduct(uuid.New().String(), prices[i], "M")
				for j := 0; j < quantities[i]; j++ {
					if err := engine.AddLine(ctx, "profile-a", p, "M"); err != nil {
						t.Logf("FAIL: AddLine returned error: %v", err)
						return false
					}
				}
				want += prices[i] * float64(quantities[i])
			}

			got, err := engine.Total(ctx, "profile-a")
			if err != nil {
				t.Logf("FAIL: Total returned error: %v", err)
				return false
			}
			if got < want-0.001 || got > want+0.001 {
				t.Logf("FAIL: Expected total %f, got %f", want, got)
				return false
			}
			return true
		},
		gen.SliceOfN(5, gen.Float64Range(0.01, 9999.99)),
		gen.SliceOfN(5, gen.IntRange(1, 5)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
