package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	FulfillmentBaseURL string
	FulfillmentAPIKey  string
	NowPaymentsBaseURL string
	NowPaymentsAPIKey  string
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	JWTSecret          string
	StatusCooldown     time.Duration
	SweepInterval      time.Duration
	SweepBatchSize     int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress         = ":8080"
	defaultJWTSecret          = "change-me-in-production"
	defaultNowPaymentsBaseURL = "https://api.nowpayments.io"
	defaultStatusCooldown     = 30 * time.Second
	defaultSweepInterval      = time.Minute
	defaultSweepBatchSize     = 32
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from a .env file (if present), environment
// variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		FulfillmentBaseURL: getString(lookup, "FULFILLMENT_API_URL", ""),
		FulfillmentAPIKey:  getString(lookup, "FULFILLMENT_API_KEY", ""),
		NowPaymentsBaseURL: getString(lookup, "NOWPAYMENTS_API_URL", defaultNowPaymentsBaseURL),
		NowPaymentsAPIKey:  getString(lookup, "NOWPAYMENTS_API_KEY", ""),
		StripeSecretKey:    getString(lookup, "STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: getString(lookup, "CHECKOUT_SUCCESS_URL", ""),
		CheckoutCancelURL:  getString(lookup, "CHECKOUT_CANCEL_URL", ""),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		StatusCooldown:     getDuration(lookup, "STATUS_COOLDOWN", defaultStatusCooldown),
		SweepInterval:      getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchSize:     getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("votemart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cooldownStr        = cfg.StatusCooldown.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.FulfillmentBaseURL, "f", cfg.FulfillmentBaseURL, "Fulfillment API base URL")
	fs.StringVar(&cfg.FulfillmentAPIKey, "fulfillment-key", cfg.FulfillmentAPIKey, "Fulfillment API key")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orders per sweep batch")
	fs.StringVar(&cooldownStr, "status-cooldown", cooldownStr, "Minimum interval between status checks per order")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between reconciliation sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StatusCooldown, err = time.ParseDuration(cooldownStr); err != nil {
		return nil, fmt.Errorf("invalid status cooldown: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.StatusCooldown <= 0 {
		cfg.StatusCooldown = defaultStatusCooldown
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.FulfillmentBaseURL == "" {
		return nil, fmt.Errorf("fulfillment API base URL must be provided")
	}

	if cfg.FulfillmentAPIKey == "" {
		return nil, fmt.Errorf("fulfillment API key must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	if cfg.NowPaymentsAPIKey == "" {
		return nil, fmt.Errorf("nowpayments API key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
