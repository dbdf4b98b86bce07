package main

//
//  @title           marketbriefs API
//  @version         1.0
//  @description     Ticker price history, metrics and narrative briefs.
//  @termsOfService  https://github.com/marketbriefs/marketbriefs
//  @contact.name    API Support
//  @contact.url     https://github.com/marketbriefs/marketbriefs
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        prices
//  @tag.description Price history and CSV export
//
//  @tag.name        summaries
//  @tag.description Narrative briefs composed from window metrics
//
//  @tag.name        symbols
//  @tag.description Ticker catalog search
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marketbriefs/marketbriefs/config"
	_ "github.com/marketbriefs/marketbriefs/docs" // swagger docs
	"github.com/marketbriefs/marketbriefs/internal/app"
	"github.com/marketbriefs/marketbriefs/internal/logger"
	"github.com/marketbriefs/marketbriefs/internal/refresher"
	"github.com/marketbriefs/marketbriefs/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the marketbriefs application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API serving price history, briefs and search.
//   - refresh: Warms the price store for the configured watchlist, either
//     once (--once) or on the configured cron schedule.
//
// Flags:
//   - --mode: Execution mode ("api" or "refresh"). Default: "api".
//   - --once: In refresh mode, run a single refresh and exit.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --symbols: Refresh watchlist. Defaults to value from config (REFRESH_SYMBOLS).
//   - --cron: Refresh schedule. Defaults to value from config (REFRESH_CRON).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or refresh")
	once := flag.Bool("once", false, "Refresh mode: run a single refresh and exit")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	symbols := flag.String("symbols", strings.Join(config.AppConfig.Refresh.Symbols, ","), "Refresh mode: comma-separated watchlist")
	cronSpec := flag.String("cron", config.AppConfig.Refresh.Cron, "Refresh mode: six-field cron schedule")
	flag.Parse()

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "refresh":
		// Refresh mode: warm the watchlist through the acquisition pipeline
		logger.L().Info().Msg("running watchlist refresh")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := app.RunMigrations(db); err != nil {
			logger.L().Fatal().Err(err).Msg("migration error")
		}

		repo := storage.NewPricesRepository(db)
		prices := app.NewPriceService(config.AppConfig, repo)
		r := refresher.New(prices, parseWatchlist(*symbols), *cronSpec)

		if *once {
			if err := r.RunOnce(ctx); err != nil {
				logger.L().Fatal().Err(err).Msg("refresh failed")
			}
			logger.L().Info().Msg("refresh completed successfully")
			return
		}

		daemonCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := r.Run(daemonCtx); err != nil {
			logger.L().Fatal().Err(err).Msg("refresh daemon failed")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// parseWatchlist splits a comma-separated ticker list, dropping blanks.
func parseWatchlist(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
