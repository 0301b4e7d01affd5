package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"flock/pkg/requestcontext"
)

// RequestID assigns each request an ID (honoring an inbound X-Request-ID) and
// stamps the request-scoped time so services share one clock per request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
