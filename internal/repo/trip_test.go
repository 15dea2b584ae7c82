package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// newTestRepos opens a transaction against the test database and returns a
// TripRepo and an ActivityRepo backed by it. The transaction is automatically
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestRepos(t *testing.T) (repo.TripRepo, repo.ActivityRepo) {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test; no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewTripRepo(tx), repo.NewActivityRepo(tx)
}

func newTestRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	trips, _ := newTestRepos(t)
	return trips
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		Destination: "Patagonia",
		StartsAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Destination, got.Destination)
	assert.True(t, got.StartsAt.Equal(input.StartsAt), "StartsAt mismatch")
	assert.True(t, got.EndsAt.Equal(input.EndsAt), "EndsAt mismatch")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Destination, got.Destination)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	// Use a UUID that was never inserted.
	id := uuid.UUID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStore)
}

func TestTripRepo_List(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	t1 := tripFixture()
	t1.Destination = "First Trip"

	t2 := tripFixture()
	t2.Destination = "Second Trip"
	t2.StartsAt = t1.StartsAt.AddDate(0, 1, 0) // one month later
	t2.EndsAt = t1.EndsAt.AddDate(0, 1, 0)

	_, err := r.Create(ctx, t1)
	require.NoError(t, err)
	_, err = r.Create(ctx, t2)
	require.NoError(t, err)

	trips, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(trips), 2, "should return at least the two created trips")

	// List is ordered by starts_at DESC, so the later trip comes first.
	first, second := -1, -1
	for i, tr := range trips {
		switch tr.Destination {
		case "First Trip":
			first = i
		case "Second Trip":
			second = i
		}
	}
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, second, first)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Destination = "Tierra del Fuego"
	created.EndsAt = created.EndsAt.AddDate(0, 0, 3)

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Tierra del Fuego", updated.Destination)
	assert.True(t, updated.EndsAt.Equal(created.EndsAt))
	// updated_at should be refreshed; it may equal created_at in fast tests
	// (now() is fixed for the transaction) but must not be zero.
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	ghost := tripFixture()
	ghost.ID = uuid.UUID{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef,
		0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

	_, err := r.Update(ctx, ghost)

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id := uuid.UUID{0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe,
		0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe}

	err := r.Delete(ctx, id)

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

// ---- GetWithActivities -----------------------------------------------------

func TestTripRepo_GetWithActivities_Ordered(t *testing.T) {
	trips, acts := newTestRepos(t)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	// Insert out of order; the read must sort by occurs_at.
	for _, a := range []struct {
		title string
		at    time.Time
	}{
		{"glacier", time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)},
		{"arrival", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{"ferry", time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)},
	} {
		_, err := acts.Create(ctx, domain.Activity{TripID: trip.ID, Title: a.title, OccursAt: a.at})
		require.NoError(t, err)
	}

	gotTrip, gotActs, err := trips.GetWithActivities(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, trip.ID, gotTrip.ID)
	assert.Equal(t, trip.Destination, gotTrip.Destination)
	assert.True(t, gotTrip.StartsAt.Equal(trip.StartsAt))
	require.Len(t, gotActs, 3)
	assert.Equal(t, "arrival", gotActs[0].Title)
	assert.Equal(t, "ferry", gotActs[1].Title)
	assert.Equal(t, "glacier", gotActs[2].Title)
	for _, a := range gotActs {
		assert.Equal(t, trip.ID, a.TripID)
		assert.NotEqual(t, uuid.Nil, a.ID)
	}
}

func TestTripRepo_GetWithActivities_NoActivities(t *testing.T) {
	trips, _ := newTestRepos(t)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	gotTrip, gotActs, err := trips.GetWithActivities(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, trip.ID, gotTrip.ID)
	assert.NotNil(t, gotActs)
	assert.Empty(t, gotActs)
}

// Activities of other trips must not leak into the result.
func TestTripRepo_GetWithActivities_ScopedToTrip(t *testing.T) {
	trips, acts := newTestRepos(t)
	ctx := context.Background()

	mine, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	other, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = acts.Create(ctx, domain.Activity{TripID: other.ID, Title: "not mine", OccursAt: other.StartsAt})
	require.NoError(t, err)

	_, gotActs, err := trips.GetWithActivities(ctx, mine.ID)

	require.NoError(t, err)
	assert.Empty(t, gotActs)
}

func TestTripRepo_GetWithActivities_NotFound(t *testing.T) {
	trips, _ := newTestRepos(t)

	_, _, err := trips.GetWithActivities(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripRepo_Delete_CascadesActivities(t *testing.T) {
	trips, acts := newTestRepos(t)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = acts.Create(ctx, domain.Activity{TripID: trip.ID, Title: "hike", OccursAt: trip.StartsAt})
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, trip.ID))

	_, _, err = trips.GetWithActivities(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}
