// Package health reports liveness and the state of the content snapshot.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/pkg/cron"
	"github.com/sheetsite/core/internal/pkg/response"
)

// Check pings an optional dependency such as the database or redis.
type Check func(ctx context.Context) error

// Snapshots hands out the current snapshot.
type Snapshots interface {
	Current() *snapshot.Snapshot
}

type Handler struct {
	snaps  Snapshots
	sched  *cron.Scheduler
	checks map[string]Check
	now    func() time.Time
}

// NewHandler builds the health endpoints. checks may be nil; a failing check
// marks the service degraded.
func NewHandler(snaps Snapshots, sched *cron.Scheduler, checks map[string]Check) *Handler {
	return &Handler{snaps: snaps, sched: sched, checks: checks, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

// RegisterTaskRoutes mounts the scheduler endpoints.
func (h *Handler) RegisterTaskRoutes(rg *gin.RouterGroup) {
	rg.GET("/tasks", h.tasks)
	rg.POST("/tasks/:name/run", h.runTask)
	rg.GET("/tasks/:name", h.task)
}

type snapshotState struct {
	Version   string     `json:"version"`
	Source    string     `json:"source"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
	Errors    int        `json:"errors"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Snapshot  snapshotState     `json:"snapshot"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *Handler) health(c *gin.Context) {
	snap := h.snaps.Current()
	state := snapshotState{Version: snap.Version, Source: snap.Source, Errors: len(snap.Errors)}
	if !snap.FetchedAt.IsZero() {
		at := snap.FetchedAt
		state.FetchedAt = &at
	}

	status, code := "ok", http.StatusOK
	var results map[string]string
	if len(h.checks) > 0 {
		results = make(map[string]string, len(h.checks))
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for name, check := range h.checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
	}

	c.JSON(code, healthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Snapshot:  state,
		Checks:    results,
	})
}

func (h *Handler) tasks(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) runTask(c *gin.Context) {
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "job triggered"})
}

func (h *Handler) task(c *gin.Context) {
	res, err := h.sched.GetTask(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, res)
}
