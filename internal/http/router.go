// Package httpapi assembles the HTTP surface: public sign-up routes, the
// token-guarded admin routes, and the operational endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flock/internal/platform/middleware"
	"flock/internal/registration/handler"
	"flock/pkg/platform/httputil"
	adminmw "flock/pkg/platform/middleware/admin"
)

// HealthCheck reports the health of one dependency. Nil-safe wiring: only
// configured dependencies register a check.
type HealthCheck func(ctx context.Context) error

// NewRouter wires all endpoints. One registration handler per domain.
func NewRouter(handlers []*handler.Handler, adminToken string, logger *slog.Logger, checks map[string]HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(checks))

	for _, h := range handlers {
		h.RegisterPublic(r)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(adminToken, logger))
		for _, h := range handlers {
			h.RegisterAdmin(r)
		}
	})

	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status[name] = "unhealthy"
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, status)
	}
}
