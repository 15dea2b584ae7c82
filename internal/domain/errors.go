package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrTripNotFound is returned when a trip lookup by ID matches no row.
// It wraps ErrNotFound, so callers may test for either.
var ErrTripNotFound = fmt.Errorf("trip %w", ErrNotFound)

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStore is wrapped around every data-store failure that is not a missing
// row (connection refused, timeout, constraint the service did not expect).
// It keeps infrastructure failures distinguishable from ErrNotFound.
var ErrStore = errors.New("data store error")
