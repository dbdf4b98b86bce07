package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/marketbriefs/marketbriefs/config"
	"github.com/marketbriefs/marketbriefs/internal/api"
	"github.com/marketbriefs/marketbriefs/internal/cache"
	"github.com/marketbriefs/marketbriefs/internal/service"
	"github.com/marketbriefs/marketbriefs/internal/storage"
	"github.com/marketbriefs/marketbriefs/internal/upstream"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Applies pending schema migrations.
//   - Initializes the repository layer (PricesRepository).
//   - Wires the acquisition pipeline (client, fetcher, generator, cache).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Bring the schema up to date before serving traffic
	if err := migrationRunner(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewPricesRepository(db)

	// Initialize service layer (business logic)
	prices := NewPriceService(cfg, repo)
	summaries := service.NewSummaryService(repo, prices)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(prices, summaries)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// NewPriceService wires the acquisition pipeline from configuration:
// provider client, retrying fetcher, synthetic generator and the TTL
// series cache. Shared by the API server and the refresh daemon.
func NewPriceService(cfg config.Config, repo storage.PricesRepository) service.PriceService {
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout())
	fetcher := upstream.NewFetcher(client, cfg.Upstream.MaxAttempts)
	generator := upstream.NewGenerator()
	seriesCache := cache.NewSeriesCache(cfg.Cache.TTL())

	return service.NewPriceService(repo, seriesCache, fetcher, generator)
}
