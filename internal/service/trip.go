// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// minDestinationLen is the shortest destination name accepted, in runes.
const minDestinationLen = 4

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Destination = strings.TrimSpace(trip.Destination)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrTripNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, most recent start first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip.
// Returns domain.ErrValidation for invalid input, domain.ErrTripNotFound if
// the trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Destination = strings.TrimSpace(trip.Destination)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
// Returns domain.ErrTripNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be at least minDestinationLen characters after trimming.
//   - StartsAt and EndsAt must both be set.
//   - EndsAt must not be before StartsAt; a trip may start and end on the same day.
func validateTrip(trip domain.Trip) error {
	if trip.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(trip.Destination) < minDestinationLen {
		return fmt.Errorf("%w: destination must be at least %d characters", domain.ErrValidation, minDestinationLen)
	}
	if trip.StartsAt.IsZero() {
		return fmt.Errorf("%w: starts_at is required", domain.ErrValidation)
	}
	if trip.EndsAt.IsZero() {
		return fmt.Errorf("%w: ends_at is required", domain.ErrValidation)
	}
	if trip.EndsAt.Before(trip.StartsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrValidation)
	}
	return nil
}
