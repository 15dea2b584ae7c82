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

// pgForeignKeyViolation is the SQLSTATE Postgres raises when an insert
// references a parent row that does not exist.
const pgForeignKeyViolation = "23503"

// ActivityRepo defines the persistence operations for Activities.
// Every activity belongs to exactly one trip.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	// Returns domain.ErrTripNotFound if the parent trip does not exist.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

// Create inserts a new activity row and returns the full persisted record.
// The parent trip may be deleted between the service's existence check and
// this insert; the foreign key catches that and it is reported as not found.
func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, title, occurs_at)
		VALUES (@trip_id, @title, @occurs_at)
		RETURNING id, trip_id, title, occurs_at, created_at`

	args := pgx.NamedArgs{
		"trip_id":   activity.TripID,
		"title":     activity.Title,
		"occurs_at": activity.OccursAt,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", domain.ErrTripNotFound)
		}
		return domain.Activity{}, wrapErr("repo.ActivityRepo.Create", err)
	}
	return result, nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &a.Title, &a.OccursAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	return a, nil
}
