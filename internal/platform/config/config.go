// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Both cmd/api and cmd/worker load the same struct; the worker simply ignores
the HTTP-only fields.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the marsAI festival services.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis): drafts, gallery cache, reset tokens, task queue
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for access token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (MinIO / S3-compatible) for posters, stills, subtitles
	S3Bucket    string `env:"S3_BUCKET"      envDefault:"marsai-media"`
	S3Region    string `env:"S3_REGION"      envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"    envDefault:"localhost:9000"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3UseSSL    bool   `env:"S3_USE_SSL"     envDefault:"false"`

	// Cross-Origin Resource Sharing (comma separated)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Submission wizard
	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"24h"`

	// Gallery catalogue cache lifetime
	GalleryCacheTTL time.Duration `env:"GALLERY_CACHE_TTL" envDefault:"5m"`

	// Handoff worker
	WorkerConcurrency    int           `env:"WORKER_CONCURRENCY"     envDefault:"4"`
	AcceptanceWebhookURL string        `env:"ACCEPTANCE_WEBHOOK_URL"`
	HandoffSweepInterval time.Duration `env:"HANDOFF_SWEEP_INTERVAL" envDefault:"5m"`

	// DefaultLocale is used when the client expresses no usable preference.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"fr"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DraftTTL <= 0 {
		return fmt.Errorf("config: DRAFT_TTL must be positive, got %s", c.DraftTTL)
	}
	if c.WorkerConcurrency < 1 {
		return fmt.Errorf("config: WORKER_CONCURRENCY must be at least 1, got %d", c.WorkerConcurrency)
	}
	if c.HandoffSweepInterval < time.Minute {
		return fmt.Errorf("config: HANDOFF_SWEEP_INTERVAL must be at least 1m, got %s", c.HandoffSweepInterval)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
