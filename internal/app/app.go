package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sheetsite/core/internal/config"
	"github.com/sheetsite/core/internal/database"
	"github.com/sheetsite/core/internal/middleware"
	"github.com/sheetsite/core/internal/modules/content/snapshot"
	"github.com/sheetsite/core/internal/modules/sheets/fetcher"
	"github.com/sheetsite/core/internal/modules/sheets/source"
	"github.com/sheetsite/core/internal/modules/system/locator"
	pkgcron "github.com/sheetsite/core/internal/pkg/cron"
	pkgredis "github.com/sheetsite/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	rc      *pkgredis.Client
	logger  *zap.Logger
	cancel  context.CancelFunc
	sched   *pkgcron.Scheduler
	fetcher *fetcher.Fetcher
	store   *snapshot.Store
	locator *locator.Service
}

// New initializes the application: config → DB → Redis → source → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	var db *gorm.DB
	if cfg.DatabaseEnabled() {
		var err error
		if db, err = database.Connect(cfg, true); err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	} else {
		logger.Info("no dsn configured, source locator is kept in memory")
	}

	var rc *pkgredis.Client
	if cfg.RedisEnabled() {
		var err error
		if rc, err = pkgredis.Connect(cfg.RedisURL); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("no redis_url configured, snapshot and response cache are process-local")
	}

	ctx, cancel := context.WithCancel(context.Background())
	src, err := newSource(ctx, cfg.Sheets)
	if err != nil {
		cancel()
		_ = database.Close(db)
		return nil, fmt.Errorf("sheets source: %w", err)
	}

	a, err := assemble(ctx, cancel, logger, cfg, src, db, rc)
	if err != nil {
		cancel()
		_ = database.Close(db)
		return nil, err
	}
	a.start(ctx)
	return a, nil
}

// assemble builds the service graph without starting background work.
func assemble(ctx context.Context, cancel context.CancelFunc, logger *zap.Logger, cfg *config.AppConfig,
	src source.Source, db *gorm.DB, rc *pkgredis.Client) (*App, error) {
	defaultLoc, err := source.ParseLocator(cfg.Sheets.DefaultURL)
	if err != nil {
		return nil, fmt.Errorf("sheets.default_url: %w", err)
	}
	f := fetcher.New(src, defaultLoc, logger.Named("fetcher"))

	opts := snapshot.Options{
		Logger:       logger.Named("snapshot"),
		Placeholders: placeholders(cfg.Sheets.PlaceholderPages),
	}
	var purge locator.Purger
	if rc != nil {
		opts.Shared = rc
		opts.SharedTTL = 2 * cfg.Sheets.RefreshInterval
		purge = func(ctx context.Context) (int64, error) {
			return middleware.PurgeHTTPCache(ctx, rc.Raw())
		}
	}
	store := snapshot.NewStore(f, opts)

	var locStore locator.Store = &locator.MemoryStore{}
	if db != nil {
		locStore = locator.NewGormStore(db)
	}
	svc := locator.NewService(locStore, store, defaultLoc.URL(), purge, logger.Named("locator"))
	if err := svc.Load(ctx); err != nil {
		logger.Warn("restore source locator", zap.Error(err))
	}

	a := &App{
		cfg:     cfg,
		db:      db,
		rc:      rc,
		logger:  logger,
		cancel:  cancel,
		sched:   pkgcron.New(logger.Named("cron")),
		fetcher: f,
		store:   store,
		locator: svc,
	}
	registerCronJobs(a.sched, svc, cfg.Sheets.RefreshInterval)
	a.router = a.newRouter()
	a.registerRoutes()
	return a, nil
}

// start launches the scheduler and the redis invalidation follower.
func (a *App) start(ctx context.Context) {
	if a.cfg.Sheets.RefreshInterval > 0 {
		go a.sched.Start(ctx)
	} else {
		go func() {
			if _, err := a.locator.Refresh(ctx); err != nil {
				a.logger.Warn("initial refresh", zap.Error(err))
			}
		}()
	}
	if a.rc != nil {
		go a.store.Follow(ctx, a.rc.Messages(ctx, snapshot.InvalidateChannel))
	}
}

func (a *App) newRouter() *gin.Engine {
	if a.cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(a.logger.Named("http")))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", source.HeaderSheetURL},
		ExposeHeaders: []string{"Content-Length", "x-sheetsite-cache"},
	}
	if len(a.cfg.AllowedOrigins) > 0 && !a.cfg.IsDev() {
		patterns := a.cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	if a.rc != nil {
		router.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
			TTL:         a.cfg.Cache.TTL,
			Disable:     a.cfg.Cache.Disable,
			SkipPaths:   []string{"/api/health", "/api/sheets/*", "/.netlify/*", "/api/v1/refresh", "/api/v1/source", "/api/v1/tasks*"},
			VaryHeaders: []string{source.HeaderSheetURL},
		}))
	}
	return router
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines and releases connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
}
