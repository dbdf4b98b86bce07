package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, Postgres connection details, the upstream price
// provider and the refresh daemon.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=marketbriefs
//	POSTGRES_SSLMODE=disable
//	UPSTREAM_BASE_URL=https://query1.finance.yahoo.com
//	UPSTREAM_TIMEOUT_SECONDS=10
//	FETCH_MAX_ATTEMPTS=2
//	CACHE_TTL_SECONDS=300
//	REFRESH_CRON=0 0 22 * * 1-5
//	REFRESH_SYMBOLS=SPY,QQQ
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Upstream UpstreamConfig // Price provider client settings
	Cache    CacheConfig    // In-process series cache settings
	Refresh  RefreshConfig  // Watchlist refresh daemon settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// UpstreamConfig defines how the provider client fetches price history.
//
// Fields:
//   - BaseURL: provider root (the chart API path is appended per request).
//   - TimeoutSeconds: per-call HTTP timeout.
//   - MaxAttempts: total fetch attempts before the synthetic fallback.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
	MaxAttempts    int
}

// Timeout returns the per-call HTTP timeout as a duration.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// CacheConfig defines the in-process series cache behavior.
type CacheConfig struct {
	TTLSeconds int
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RefreshConfig defines the watchlist refresh daemon schedule.
//
// Fields:
//   - Cron: six-field cron spec with seconds (e.g., "0 0 22 * * 1-5").
//   - Symbols: tickers to keep warm, parsed from a comma-separated list.
type RefreshConfig struct {
	Cron    string
	Symbols []string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "marketbriefs")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("UPSTREAM_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("FETCH_MAX_ATTEMPTS", 2)

	viper.SetDefault("CACHE_TTL_SECONDS", 300)

	viper.SetDefault("REFRESH_CRON", "0 0 22 * * 1-5")
	viper.SetDefault("REFRESH_SYMBOLS", "SPY,QQQ")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        viper.GetString("UPSTREAM_BASE_URL"),
			TimeoutSeconds: viper.GetInt("UPSTREAM_TIMEOUT_SECONDS"),
			MaxAttempts:    viper.GetInt("FETCH_MAX_ATTEMPTS"),
		},
		Cache: CacheConfig{
			TTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
		Refresh: RefreshConfig{
			Cron:    viper.GetString("REFRESH_CRON"),
			Symbols: splitSymbols(viper.GetString("REFRESH_SYMBOLS")),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// splitSymbols parses a comma-separated ticker list, trimming blanks.
func splitSymbols(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Upstream.BaseURL == "" {
		missing = append(missing, "UPSTREAM_BASE_URL")
	}
	if AppConfig.Upstream.TimeoutSeconds <= 0 {
		missing = append(missing, "UPSTREAM_TIMEOUT_SECONDS")
	}
	if AppConfig.Upstream.MaxAttempts <= 0 {
		missing = append(missing, "FETCH_MAX_ATTEMPTS")
	}
	if AppConfig.Cache.TTLSeconds <= 0 {
		missing = append(missing, "CACHE_TTL_SECONDS")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
