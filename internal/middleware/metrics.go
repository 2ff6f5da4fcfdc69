package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver records one finished HTTP request. *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, start time.Time)
}

// NewMetrics returns a middleware that reports every request to obs, labelled
// by the matched chi route pattern rather than the raw path so that ids do not
// explode label cardinality. Unmatched requests are labelled "unmatched".
func NewMetrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveHTTPRequest(r.Method, route, status, start)
		})
	}
}
