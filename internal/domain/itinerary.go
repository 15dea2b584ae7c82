package domain

import "time"

// DayBucket groups the activities that fall on one calendar day.
// Date is midnight of that day in the location used for bucketing.
// Activities keep the ascending occurs_at order they were fetched in.
type DayBucket struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}

// Itinerary is a trip's activities regrouped by day.
// Days holds one bucket per calendar day from the trip's start day to its end
// day inclusive, in chronological order, with no gaps. Days without activities
// still get a bucket with an empty (non-nil) Activities slice.
type Itinerary struct {
	Days []DayBucket `json:"activities"`
}
