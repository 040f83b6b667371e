package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/keja/service/internal/response"
)

// Waiter is satisfied by readiness.Gate.
type Waiter interface {
	Ready() bool
	Wait(ctx context.Context) error
}

// RequireReady holds requests until gate opens, for at most wait, and then
// rejects them with 503 so no handler ever runs against an unconnected store.
func RequireReady(gate Waiter, wait time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Ready() {
				ctx, cancel := context.WithTimeout(r.Context(), wait)
				err := gate.Wait(ctx)
				cancel()
				if err != nil {
					w.Header().Set("Retry-After", "1")
					response.ServiceUnavailable(w, "Storage not ready")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
