package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/pkg/cron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixed struct{ snap *snapshot.Snapshot }

func (f fixed) Current() *snapshot.Snapshot { return f.snap }

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	h.RegisterTaskRoutes(r.Group("/api/v1"))
	return r
}

func get(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthOK(t *testing.T) {
	snap := snapshot.Empty()
	snap.Version = "abc"
	snap.FetchedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewHandler(fixed{snap}, cron.New(nil), nil)
	h.now = func() time.Time { return time.Date(2024, 1, 2, 3, 5, 0, 0, time.UTC) }

	w, body := get(t, newRouter(h), http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2024-01-02T03:05:00Z", body["timestamp"])
	assert.Equal(t, "abc", body["snapshot"].(map[string]any)["version"])
	assert.NotContains(t, body, "checks")
}

func TestHealthDegraded(t *testing.T) {
	checks := map[string]Check{
		"redis":    func(context.Context) error { return nil },
		"database": func(context.Context) error { return errors.New("dial tcp: refused") },
	}
	h := NewHandler(fixed{snapshot.Empty()}, cron.New(nil), checks)

	w, body := get(t, newRouter(h), http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]any{"redis": "ok", "database": "dial tcp: refused"}, body["checks"])
}

func TestTaskRoutes(t *testing.T) {
	sched := cron.New(nil)
	sched.Register(cron.Job{Name: "refresh_snapshot", Interval: time.Hour, Fn: func(context.Context) error { return nil }})
	r := newRouter(NewHandler(fixed{snapshot.Empty()}, sched, nil))

	w, body := get(t, r, http.MethodGet, "/api/v1/tasks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 1)

	w, _ = get(t, r, http.MethodGet, "/api/v1/tasks/refresh_snapshot")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = get(t, r, http.MethodPost, "/api/v1/tasks/missing/run")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
