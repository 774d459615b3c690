package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"togetherbikes/internal/domain"
	"togetherbikes/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyFavoriteRepo struct {
	repository.FavoriteRepository
	failList bool

	upsertCalls atomic.Int32
	listCalls   atomic.Int32
	listGate    chan struct{} // when set, ListByUser blocks until closed
}

func (r *flakyFavoriteRepo) Upsert(ctx context.Context, rows []domain.FavoriteRow) error {
	r.upsertCalls.Add(1)
	return r.FavoriteRepository.Upsert(ctx, rows)
}

func (r *flakyFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]domain.FavoriteRow, error) {
	r.listCalls.Add(1)
	if r.listGate != nil {
		<-r.listGate
	}
	if r.failList {
		return nil, errors.New("upstream unavailable")
	}
	return r.FavoriteRepository.ListByUser(ctx, userID)
}

func newTestWishlistEngine() (*WishlistEngine, *flakyFavoriteRepo) {
	repo := &flakyFavoriteRepo{FavoriteRepository: repository.NewMemoryFavoriteRepository()}
	return NewWishlistEngine(NewMemoryLocalStore(), repo, zap.NewNop()), repo
}

func TestWishlistEngine_ToggleAddsAndRemoves(t *testing.T) {
	engine, _ := newTestWishlistEngine()
	ctx := context.Background()
	bike := testProduct("bike-1", 2400, "M")
	helmet := testProduct("helmet-1", 180, "M")

	on, err := engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = engine.Toggle(ctx, "profile-a", helmet)
	require.NoError(t, err)
	assert.True(t, on)

	items, err := engine.Items(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "bike-1", items[0].ID)

	has, err := engine.Contains(ctx, "profile-a", "bike-1")
	require.NoError(t, err)
	assert.True(t, has)

	on, err = engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)
	assert.False(t, on)

	has, err = engine.Contains(ctx, "profile-a", "bike-1")
	require.NoError(t, err)
	assert.False(t, has)

	items, err = engine.Items(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "helmet-1", items[0].ID)
}

func TestWishlistEngine_ProfilesAreIsolated(t *testing.T) {
	engine, _ := newTestWishlistEngine()
	ctx := context.Background()
	bike := testProduct("bike-1", 2400, "M")

	_, err := engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)

	has, err := engine.Contains(ctx, "profile-b", "bike-1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWishlistEngine_AuthenticatedToggleMirrorsRemotely(t *testing.T) {
	engine, repo := newTestWishlistEngine()
	ctx, userID := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")

	_, err := engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)

	rows, err := repo.FavoriteRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bike-1", rows[0].ProductID)

	_, err = engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)

	rows, err = repo.FavoriteRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWishlistEngine_SynchronizeUnionsBothSides(t *testing.T) {
	engine, repo := newTestWishlistEngine()
	ctx, userID := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")
	helmet := testProduct("helmet-1", 180, "M")
	jersey := testProduct("jersey-1", 90, "L")

	// Account side already favors the helmet and the jersey.
	require.NoError(t, repo.FavoriteRepository.Upsert(ctx, []domain.FavoriteRow{
		{UserID: userID, ProductID: "helmet-1", Product: *helmet},
		{UserID: userID, ProductID: "jersey-1", Product: *jersey},
	}))

	// Guest side favors the bike and, overlapping, the helmet.
	guestCtx := context.Background()
	_, err := engine.Toggle(guestCtx, "profile-a", bike)
	require.NoError(t, err)
	_, err = engine.Toggle(guestCtx, "profile-a", helmet)
	require.NoError(t, err)

	require.NoError(t, engine.Synchronize(ctx, "profile-a"))

	items, err := engine.Items(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, items, 3, "sync yields the union without duplicates")

	ids := map[string]bool{}
	for _, p := range items {
		ids[p.ID] = true
	}
	assert.True(t, ids["bike-1"])
	assert.True(t, ids["helmet-1"])
	assert.True(t, ids["jersey-1"])

	rows, err := repo.FavoriteRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWishlistEngine_SynchronizeIsNoOpForGuests(t *testing.T) {
	engine, repo := newTestWishlistEngine()
	bike := testProduct("bike-1", 2400, "M")
	_, err := engine.Toggle(context.Background(), "profile-a", bike)
	require.NoError(t, err)

	require.NoError(t, engine.Synchronize(context.Background(), "profile-a"))

	rows, err := repo.FavoriteRepository.ListByUser(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWishlistEngine_SynchronizePullFailureLeavesLocalUntouched(t *testing.T) {
	engine, repo := newTestWishlistEngine()
	repo.failList = true
	ctx, _ := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")

	_, err := engine.Toggle(ctx, "profile-a", bike)
	require.NoError(t, err)

	require.Error(t, engine.Synchronize(ctx, "profile-a"))

	items, err := engine.Items(ctx, "profile-a")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bike-1", items[0].ID)
}

func TestWishlistEngine_OverlappingSynchronizeRunsOnce(t *testing.T) {
	engine, repo := newTestWishlistEngine()
	repo.listGate = make(chan struct{})
	ctx, _ := authedContext(t)
	bike := testProduct("bike-1", 2400, "M")

	_, err := engine.Toggle(context.Background(), "profile-a", bike)
	require.NoError(t, err)
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

func TestProperty_DoubleToggleRestoresMembership(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggling a product twice restores its original membership", prop.ForAll(
		func(present bool, toggles int) bool {
			engine, _ := newTestWishlistEngine()
			ctx := context.Background()
			bike := testProduct("bike-1", 2400, "M")

			if present {
				if _, err := engine.Toggle(ctx, "profile-a", bike); err != nil {
					t.Logf("FAIL: Toggle returned error: %v", err)
					return false
				}
			}

			for i := 0; i < toggles*2; i++ {
				if _, err := engine.Toggle(ctx, "profile-a", bike); err != nil {
					t.Logf("FAIL: Toggle returned error: %v", err)
					return false
				}
			}

			has, err := engine.Contains(ctx, "profile-a", "bike-1")
			if err != nil {
				t.Logf("FAIL: Contains returned error: %v", err)
				return false
			}
			if has != present {
				t.Logf("FAIL: Expected membership %v after an even number of toggles, got %v", present, has)
				return false
			}
			return true
		},
		gen.Bool(),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
