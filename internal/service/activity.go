package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// OutOfRangeRecorder is notified when activities are left out of an
// itinerary because they fall outside their trip's dates.
// *metrics.Collector satisfies it.
type OutOfRangeRecorder interface {
	ActivitiesOutOfRange(n int)
}

// ActivityService implements business logic for Activity operations.
// It holds the trips repo because activities are always read and validated
// against their parent trip.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	loc        *time.Location
	outOfRange OutOfRangeRecorder
}

// NewActivityService constructs an ActivityService backed by the provided repos.
// loc is the time zone whose calendar days activities are grouped by; nil
// means UTC. rec may be nil.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo, loc *time.Location, rec OutOfRangeRecorder) *ActivityService {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityService{trips: trips, activities: activities, loc: loc, outOfRange: rec}
}

// Create validates the activity against its parent trip, then persists it.
// Returns domain.ErrTripNotFound if the parent trip does not exist.
// Returns domain.ErrValidation if the title is empty or occurs_at falls on a
// calendar day outside the trip, i.e. on a day ListByDay has no bucket for.
func (s *ActivityService) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	activity.Title = strings.TrimSpace(activity.Title)
	if err := validateActivity(trip, activity, s.loc); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListByDay loads a trip with its activities in a single read and groups
// the activities by calendar day over the trip's span.
// Returns domain.ErrTripNotFound if the trip does not exist.
//
// Activities dated outside the trip (possible for rows written before the
// trip's dates were changed) are omitted; the omission is logged and counted.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error) {
	trip, activities, err := s.trips.GetWithActivities(ctx, tripID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}

	itinerary, placed := GroupByDay(trip, activities, s.loc)

	if dropped := len(activities) - placed; dropped > 0 {
		slog.WarnContext(ctx, "activities outside trip dates omitted from itinerary",
			"trip_id", tripID,
			"dropped", dropped,
		)
		if s.outOfRange != nil {
			s.outOfRange.ActivitiesOutOfRange(dropped)
		}
	}

	return itinerary, nil
}

// validateActivity enforces the rules for a new activity.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - OccursAt must fall on a calendar day (in loc) from the trip's first day
//     to its last day inclusive. Time of day is not checked, so an activity at
//     20:00 on the last day is accepted even if the trip ends at 09:00.
func validateActivity(trip domain.Trip, a domain.Activity, loc *time.Location) error {
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if a.OccursAt.IsZero() {
		return fmt.Errorf("%w: occurs_at is required", domain.ErrValidation)
	}
	if calendar.DaysBetween(trip.StartsAt, a.OccursAt, loc) < 0 ||
		calendar.DaysBetween(a.OccursAt, trip.EndsAt, loc) < 0 {
		return fmt.Errorf("%w: activity must occur within the trip dates", domain.ErrValidation)
	}
	return nil
}
