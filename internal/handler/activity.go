package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler/gen"
)

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(ctx context.Context, req gen.CreateActivityRequestObject) (gen.CreateActivityResponseObject, error) {
	if req.Body == nil {
		return gen.CreateActivity422JSONResponse(requestBody("request body is required")), nil
	}

	created, err := s.activities.Create(ctx, domain.Activity{
		TripID:   req.TripId,
		Title:    req.Body.Title,
		OccursAt: req.Body.OccursAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.CreateActivity404JSONResponse(notFoundBody("trip not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateActivity422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateActivity201JSONResponse(activityToResponse(created)), nil
}

// ListActivitiesByDay handles GET /trips/{tripId}/activities.
// The response has one entry per day of the trip, including empty days.
func (s *Server) ListActivitiesByDay(ctx context.Context, req gen.ListActivitiesByDayRequestObject) (gen.ListActivitiesByDayResponseObject, error) {
	itinerary, err := s.activities.ListByDay(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListActivitiesByDay404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	days := make([]gen.ActivityDay, len(itinerary.Days))
	for i, d := range itinerary.Days {
		acts := make([]gen.Activity, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = activityToResponse(a)
		}
		days[i] = gen.ActivityDay{Date: d.Date, Activities: acts}
	}
	return gen.ListActivitiesByDay200JSONResponse{Activities: days}, nil
}

// activityToResponse converts a domain.Activity into the generated gen.Activity type.
func activityToResponse(a domain.Activity) gen.Activity {
	return gen.Activity{
		Id:        a.ID,
		TripId:    a.TripID,
		Title:     a.Title,
		OccursAt:  a.OccursAt,
		CreatedAt: a.CreatedAt,
	}
}
