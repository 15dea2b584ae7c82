package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler/gen"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: destination is required" → "destination is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// requestErrorHandler renders errors raised before a handler runs: a path
// parameter that is not a UUID, or a body that is not valid JSON. A chunked
// body that overruns the MaxBodySize limit surfaces here as well.
func requestErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, gen.ErrorResponse{
			Error: gen.ErrorDetail{Code: "payload_too_large", Message: "request body too large"},
		})
		return
	}
	writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
}

// responseErrorHandler renders errors a handler returned instead of a typed
// response. Data-store failures become 503 so clients can retry; anything
// else is a 500. The detail is logged, never sent to the client.
func responseErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, code, message := http.StatusInternalServerError, "internal_error", "internal server error"
		if errors.Is(err, domain.ErrStore) {
			status, code, message = http.StatusServiceUnavailable, "store_unavailable", "data store unavailable"
		}

		log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, status, gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — the status line is already written; nothing useful to do on failure.
	json.NewEncoder(w).Encode(body)
}
