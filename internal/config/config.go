package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/simaogato/notaryflow-backend/internal/usecase/timeline_planner"
)

// Config holds all configuration for the service.
// Values come from environment variables, optionally seeded from a .env file.
type Config struct {
	GRPCAddr  string `validate:"required"`
	HTTPAddr  string `validate:"required"`
	APIToken  string `validate:"required"`
	DBConnStr string // Empty selects the in-memory lead-time repository
	LogLevel  string `validate:"required,oneof=debug info warn error"`

	SafetyBufferDays int           `validate:"gte=0,lte=365"`
	DefaultLeadDays  int           `validate:"gt=0,lte=365"`
	LeadTimeCacheTTL time.Duration `validate:"gt=0"`

	ExemptionThreshold decimal.Decimal
	TransferTaxCutoff  time.Time
}

var validate = validator.New()

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file, relying on environment", "error", err)
	}

	regime := domain.DefaultTaxRegime()

	cfg := &Config{
		GRPCAddr:         getEnv("GRPC_PORT", ":8080"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":9090"),
		APIToken:         getEnv("API_TOKEN", "dev-token"),
		DBConnStr:        getEnv("DB_CONN_STR", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SafetyBufferDays: timeline_planner.DefaultSafetyBufferDays,
		DefaultLeadDays:  domain.DefaultLeadDays,
		LeadTimeCacheTTL: 10 * time.Minute,

		ExemptionThreshold: regime.DefaultExemptionThreshold,
		TransferTaxCutoff:  regime.TransferTaxCutoff,
	}

	var err error
	if cfg.SafetyBufferDays, err = getEnvAsInt("SAFETY_BUFFER_DAYS", cfg.SafetyBufferDays); err != nil {
		return nil, err
	}
	if cfg.DefaultLeadDays, err = getEnvAsInt("DEFAULT_LEAD_DAYS", cfg.DefaultLeadDays); err != nil {
		return nil, err
	}
	if cfg.LeadTimeCacheTTL, err = getEnvAsDuration("LEAD_TIME_CACHE_TTL", cfg.LeadTimeCacheTTL); err != nil {
		return nil, err
	}

	if v := os.Getenv("SELLOS_EXEMPTION_THRESHOLD"); v != "" {
		threshold, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SELLOS_EXEMPTION_THRESHOLD: %w", err)
		}
		if threshold.LessThanOrEqual(decimal.Zero) {
			return nil, errors.New("invalid SELLOS_EXEMPTION_THRESHOLD: must be positive")
		}
		cfg.ExemptionThreshold = threshold
	}

	if v := os.Getenv("TRANSFER_TAX_CUTOFF"); v != "" {
		cutoff, err := domain.ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TRANSFER_TAX_CUTOFF: %w", err)
		}
		cfg.TransferTaxCutoff = cutoff
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// TaxRegime returns the default regime with the configured statutory values
func (c *Config) TaxRegime() domain.TaxRegime {
	regime := domain.DefaultTaxRegime()
	regime.DefaultExemptionThreshold = c.ExemptionThreshold
	regime.TransferTaxCutoff = c.TransferTaxCutoff
	return regime
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
