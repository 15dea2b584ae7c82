// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into domain-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler/gen"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the business operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID uuid.UUID) (domain.Itinerary, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via NewHTTPHandler.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips      TripServicer
	activities ActivityServicer
	db         Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, activities ActivityServicer) *Server {
	return &Server{trips: trips, activities: activities}
}

// WithPinger makes GetHealth report the reachability of db. It returns s so
// it can be chained onto NewServer.
func (s *Server) WithPinger(db Pinger) *Server {
	s.db = db
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// NewHTTPHandler mounts srv's routes on r (a fresh chi router when r is nil)
// using the generated bindings. Malformed path parameters, undecodable bodies
// and unexpected service errors are all rendered as JSON ErrorResponse bodies;
// unexpected errors are also logged to log.
func NewHTTPHandler(srv *Server, log *slog.Logger, r chi.Router) http.Handler {
	strict := gen.NewStrictHandlerWithOptions(srv, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler,
		ResponseErrorHandlerFunc: responseErrorHandler(log),
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: requestErrorHandler,
	})
}
