package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Observability (optional)
	SentryDSN string

	// Review worker
	ReviewSchedule    string // cron expression
	ReviewOnStart     bool
	ReviewConcurrency int
	ComplianceWindow  int // days

	// Snapshot export (optional, disabled when S3_BUCKET is empty)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, R2, etc.)
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "goalpace"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goalpace.db"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Review worker
		ReviewSchedule:    envString("REVIEW_SCHEDULE", "0 3 * * 1"), // Mondays 03:00
		ReviewOnStart:     envBool("REVIEW_ON_START", false),
		ReviewConcurrency: envInt("REVIEW_CONCURRENCY", 4),
		ComplianceWindow:  envInt("COMPLIANCE_WINDOW", 7),

		// Snapshot export
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction rejects a file database path that lives inside the
// container's ephemeral working directory.
func validateProduction(cfg *Config) {
	if cfg.DBDriver == "sqlite" && cfg.DBConnection == "./data/goalpace.db" {
		slog.Warn("production deployment uses the default sqlite path",
			"hint", "set DB_CONNECTION to a persistent volume or use DB_DRIVER=pgx")
	}
	if cfg.ReviewConcurrency < 1 {
		slog.Error("REVIEW_CONCURRENCY must be at least 1", "value", cfg.ReviewConcurrency)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SnapshotsEnabled reports whether summaries are exported after a review.
func (c *Config) SnapshotsEnabled() bool {
	return c.S3Bucket != ""
}
