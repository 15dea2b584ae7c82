package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests that did not match any registered route,
// so stray paths cannot blow up metric cardinality.
const unmatchedRoute = "unmatched"

// RequestRecorder receives one observation per served request.
// *metrics.Collector satisfies it.
type RequestRecorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// NewMetrics returns a middleware that reports every request to rec, labelled
// with chi's matched route pattern (e.g. "/trips/{tripId}") rather than the raw
// path. Register it with Use on the top-level router: chi fills in the route
// pattern while routing, which is after this middleware starts but before it
// records.
func NewMetrics(rec RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// Handler wrote nothing; net/http sends 200 in that case.
				status = http.StatusOK
			}
			rec.ObserveRequest(r.Method, routePattern(r), status, time.Since(start))
		})
	}
}
