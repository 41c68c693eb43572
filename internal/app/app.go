// Package app wires the screening pipeline's dependencies together.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/backend"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/content"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/database"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/handlers"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/imaging"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/middleware"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/modelrouter"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/pipeline"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/ratelimit"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/router"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/sanitize"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/utils"
)

// App centralizes the application's dependencies and configuration
type App struct {
	Config   *config.Config
	Handlers *handlers.APIHandlers

	dbConn *database.Connection
}

// NewApp creates an App with all dependencies wired. MongoDB is optional:
// without it the rate limiter falls back to in-process counters and the
// audit trail is disabled.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	capabilities, err := config.LoadModelCapabilities("models.json")
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded model capabilities", "count", len(capabilities))

	a := &App{Config: cfg}

	var store ratelimit.CounterStore
	var auditor pipeline.Auditor
	var dbChecker handlers.HealthChecker

	if utils.GetEnvBool("MONGODB_ENABLED", false) {
		conn, connErr := database.GetConnection()
		if connErr != nil {
			return nil, connErr
		}
		a.dbConn = conn
		dbChecker = conn

		mongoStore := ratelimit.NewMongoStore(conn.GetCollection("rate-limit-counters"))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if idxErr := mongoStore.EnsureIndexes(ctx); idxErr != nil {
			logger.Warn("Failed to create rate limit indexes", "error", idxErr)
		}
		store = mongoStore

		repo := database.NewScreeningRepositoryWithCollection(conn.GetCollection("screening-records"))
		if idxErr := repo.EnsureIndexes(ctx); idxErr != nil {
			logger.Warn("Failed to create screening record indexes", "error", idxErr)
		}
		auditor = repo
	} else {
		logger.Info("MongoDB disabled, using in-process rate limit counters")
		store = ratelimit.NewMemoryStore()
	}

	resolver := modelrouter.NewResolver(capabilities)
	scorer := backend.NewHTTPClient(cfg.Backend)
	dispatcher := modelrouter.NewDispatcher(scorer, resolver, cfg.Retry, cfg.Backend.Model)

	screener := pipeline.NewScreener(
		ratelimit.NewLimiter(store, cfg.RateLimit),
		sanitize.NewValidator(cfg.Text),
		sanitize.NewSanitizer(),
		imaging.NewNormalizer(cfg.Image),
		content.NewHeuristic(cfg.Heuristic),
		dispatcher,
		auditor,
	)

	a.Handlers = handlers.NewAPIHandlers(cfg, screener, resolver, dbChecker)
	return a, nil
}

// SetupRoutes returns the full handler chain for the HTTP server
func (a *App) SetupRoutes() http.Handler {
	handler := router.SetupRoutes(a.Handlers)
	handler = middleware.SessionMiddleware(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	handler = middleware.RequestCorrelationMiddleware(handler)
	return handler
}

// Shutdown releases held resources
func (a *App) Shutdown() {
	if a.dbConn != nil {
		if err := a.dbConn.Disconnect(); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", "error", err)
		}
	}
}
