package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler/gen"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	trip, err := requestToTrip(req.Body)
	if err != nil {
		return gen.CreateTrip422JSONResponse(requestBody(err.Error())), nil
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(ctx context.Context, _ gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(gen.ListTrips200JSONResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out, nil
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(ctx context.Context, req gen.UpdateTripRequestObject) (gen.UpdateTripResponseObject, error) {
	trip, err := requestToTripUpdate(req.TripId, req.Body)
	if err != nil {
		return gen.UpdateTrip422JSONResponse(requestBody(err.Error())), nil
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.UpdateTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.UpdateTrip422JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.UpdateTrip200JSONResponse(tripToResponse(updated)), nil
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(ctx context.Context, req gen.DeleteTripRequestObject) (gen.DeleteTripResponseObject, error) {
	err := s.trips.Delete(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeleteTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.DeleteTrip204Response{}, nil
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a domain.Trip.
// Returns an error if the body is missing.
func requestToTrip(body *gen.CreateTripRequest) (domain.Trip, error) {
	if body == nil {
		return domain.Trip{}, errors.New("request body is required")
	}
	return domain.Trip{
		Destination: body.Destination,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	}, nil
}

// requestToTripUpdate builds a domain.Trip for an update, preserving the path ID.
func requestToTripUpdate(id openapi_types.UUID, body *gen.UpdateTripRequest) (domain.Trip, error) {
	t, err := requestToTrip(body)
	if err != nil {
		return domain.Trip{}, err
	}
	t.ID = id
	return t, nil
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
