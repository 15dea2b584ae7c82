// Package repo contains all database access logic for the Trip Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetWithActivities retrieves a trip and all of its activities in a single
	// query. Activities are ordered by occurs_at ascending; the returned slice is
	// never nil. Returns domain.ErrTripNotFound if no trip with that ID exists.
	GetWithActivities(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Activity, error)

	// List returns all trips ordered by starts_at descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrTripNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip (and, via ON DELETE CASCADE, its activities).
	// Returns domain.ErrTripNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (destination, starts_at, ends_at)
		VALUES (@destination, @starts_at, @ends_at)
		RETURNING id, destination, starts_at, ends_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Create", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, destination, starts_at, ends_at, created_at, updated_at
		FROM trips
		WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.GetByID", err)
	}
	return result, nil
}

// GetWithActivities loads a trip and its activities with one LEFT JOIN.
// Every row repeats the trip columns; a trip without activities yields a
// single row whose activity columns are all NULL. Postgres sorts NULLs last
// in ascending order, so that row never interleaves with real activities.
func (r *pgTripRepo) GetWithActivities(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Activity, error) {
	const q = `
		SELECT t.id, t.destination, t.starts_at, t.ends_at, t.created_at, t.updated_at,
		       a.id, a.title, a.occurs_at, a.created_at
		FROM trips t
		LEFT JOIN activities a ON a.trip_id = t.id
		WHERE t.id = @id
		ORDER BY a.occurs_at ASC, a.created_at ASC, a.id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Trip{}, nil, wrapErr("repo.TripRepo.GetWithActivities", err)
	}
	defer rows.Close()

	var (
		trip       domain.Trip
		found      bool
		activities = []domain.Activity{}
	)
	for rows.Next() {
		var (
			tripID     pgtype.UUID
			actID      pgtype.UUID
			actTitle   pgtype.Text
			actOccurs  pgtype.Timestamptz
			actCreated pgtype.Timestamptz
		)
		err := rows.Scan(
			&tripID, &trip.Destination, &trip.StartsAt, &trip.EndsAt, &trip.CreatedAt, &trip.UpdatedAt,
			&actID, &actTitle, &actOccurs, &actCreated,
		)
		if err != nil {
			return domain.Trip{}, nil, wrapErr("repo.TripRepo.GetWithActivities: scan", err)
		}
		trip.ID = uuid.UUID(tripID.Bytes)
		found = true

		if !actID.Valid {
			continue
		}
		activities = append(activities, domain.Activity{
			ID:        uuid.UUID(actID.Bytes),
			TripID:    trip.ID,
			Title:     actTitle.String,
			OccursAt:  actOccurs.Time,
			CreatedAt: actCreated.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.Trip{}, nil, wrapErr("repo.TripRepo.GetWithActivities: rows", err)
	}
	if !found {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.GetWithActivities: %w", domain.ErrTripNotFound)
	}

	return trip, activities, nil
}

// List returns all trips ordered by starts_at descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, destination, starts_at, ends_at, created_at, updated_at
		FROM trips
		ORDER BY starts_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, wrapErr("repo.TripRepo.List", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, wrapErr("repo.TripRepo.List: scan", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("repo.TripRepo.List: rows", err)
	}

	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, destination, starts_at, ends_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, wrapErr("repo.TripRepo.Update", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return wrapErr("repo.TripRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrTripNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrTripNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// wrapErr prefixes err with the failing operation. Not-found sentinels pass
// through as they are; anything else came from the driver and is tagged with
// domain.ErrStore so callers can tell an outage from a missing row.
func wrapErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}

