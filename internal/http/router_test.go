package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"flock/internal/domain"
	"flock/internal/notify"
	"flock/internal/registration/handler"
	"flock/internal/registration/service"
	"flock/internal/registration/store"
	"flock/pkg/testutil"
)

const adminToken = "router-test-token"

func newRouter(t *testing.T, checks map[string]HealthCheck) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handlers := make([]*handler.Handler, 0, len(domain.All()))
	for _, d := range domain.All() {
		mem := store.NewMemory()
		for id, title := range store.DemoSubjects()[d.Key] {
			mem.AddSubject(id, title)
		}
		svc := service.New(d, mem, notify.NewRecorder(), service.WithLogger(logger))
		handlers = append(handlers, handler.New(svc, d, logger))
	}
	return NewRouter(handlers, adminToken, logger, checks)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newRouter(t, nil)

	for _, path := range []string{
		"/admin/events/registrations",
		"/admin/homegroups/registrations",
		"/admin/serving/registrations",
	} {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, path))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(router,
			testutil.WithAdminToken(testutil.NewRequest(t, http.MethodGet, path), adminToken))
		testutil.AssertStatus(t, rr, http.StatusOK)
	}
}

func TestPublicSignupRoutesMounted(t *testing.T) {
	router := newRouter(t, nil)

	for _, tc := range []struct{ domainKey, subjectID string }{
		{"events", "1"},
		{"homegroups", "1"},
		{"serving", "1"},
	} {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
			"/"+tc.domainKey+"/"+tc.subjectID+"/registrations",
			map[string]string{"email": "router@example.com"}))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestHealthz(t *testing.T) {
	t.Run("healthy dependencies report ok", func(t *testing.T) {
		router := newRouter(t, map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusOK)
		status := testutil.UnmarshalResponse[map[string]string](t, rr)
		assert.Equal(t, "ok", (*status)["postgres"])
	})

	t.Run("failing dependency degrades the endpoint", func(t *testing.T) {
		router := newRouter(t, map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("down") },
		})

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		status := testutil.UnmarshalResponse[map[string]string](t, rr)
		assert.Equal(t, "ok", (*status)["postgres"])
		assert.Equal(t, "unhealthy", (*status)["redis"])
	})

	t.Run("no configured checks still report healthy", func(t *testing.T) {
		router := newRouter(t, nil)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusOK)
	})
}
