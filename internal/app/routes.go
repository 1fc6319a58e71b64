package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/modules/content/page"
	"github.com/sheetsite/core/internal/modules/sheets/proxy"
	"github.com/sheetsite/core/internal/modules/system/health"
	"github.com/sheetsite/core/internal/modules/system/locator"
	"github.com/sheetsite/core/internal/pkg/response"
)

// netlifyPrefix keeps links built against the serverless deployment working.
const netlifyPrefix = "/.netlify/functions/server/api"

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.Status(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	healthH := health.NewHandler(a.store, a.sched, a.healthChecks())
	proxyH := proxy.NewHandler(a.fetcher, a.locator.Current, a.logger.Named("proxy"))

	api := r.Group("/api")
	healthH.RegisterRoutes(api)
	proxyH.RegisterRoutes(api)
	proxyH.RegisterRoutes(r.Group(netlifyPrefix))

	v1 := api.Group("/v1")
	page.NewHandler(a.store).RegisterRoutes(v1)
	locator.NewHandler(a.locator).RegisterRoutes(v1)
	healthH.RegisterTaskRoutes(v1)
}

func (a *App) healthChecks() map[string]health.Check {
	checks := map[string]health.Check{}
	if a.rc != nil {
		checks["redis"] = a.rc.Ping
	}
	if a.db != nil {
		db := a.db
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}
