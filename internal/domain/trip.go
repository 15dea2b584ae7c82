// Package domain contains the core data types for the Trip Planner application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned trip to a destination.
// A trip is the top-level aggregate; activities belong to a trip.
// StartsAt and EndsAt are instants; calendar days are derived from them in
// the service's configured location.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
