package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something planned to happen at a specific instant during a trip.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	OccursAt  time.Time `json:"occurs_at"`
	CreatedAt time.Time `json:"created_at"`
}
