package handler

import (
	"context"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/handler/gen"
)

// healthPingTimeout bounds the data-store ping so a hung database cannot
// make the liveness probe itself time out.
const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GetHealth handles GET /healthz.
// It always returns HTTP 200 with {"status":"ok"} while the server is running.
// When a Pinger is wired, the "database" field reports whether it answered.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	resp := gen.GetHealth200JSONResponse{Status: "ok"}
	if s.db == nil {
		return resp, nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	state := gen.HealthResponseDatabaseOk
	if err := s.db.Ping(ctx); err != nil {
		state = gen.HealthResponseDatabaseUnavailable
	}
	resp.Database = &state
	return resp, nil
}
