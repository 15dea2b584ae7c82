package service

import (
	"time"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// GroupByDay partitions activities into one bucket per calendar day of the
// trip, from the day containing StartsAt to the day containing EndsAt
// inclusive, with days computed in loc (nil means UTC).
//
// activities must already be sorted by OccursAt; each bucket keeps that order.
// Every day of the span gets a bucket even when nothing happens on it.
// Activities whose day lies outside the span land in no bucket; the second
// return value is how many were placed, so callers can detect the drop.
func GroupByDay(trip domain.Trip, activities []domain.Activity, loc *time.Location) (domain.Itinerary, int) {
	days := calendar.Span(trip.StartsAt, trip.EndsAt, loc)

	placed := 0
	buckets := make([]domain.DayBucket, len(days))
	for i, day := range days {
		onDay := []domain.Activity{}
		for _, a := range activities {
			if calendar.SameDay(a.OccursAt, day, loc) {
				onDay = append(onDay, a)
			}
		}
		placed += len(onDay)
		buckets[i] = domain.DayBucket{Date: day, Activities: onDay}
	}

	return domain.Itinerary{Days: buckets}, placed
}
