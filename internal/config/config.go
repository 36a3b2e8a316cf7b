package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	DB            DatabaseConfig
	Redis         RedisConfig
	ProductSource UpstreamConfig
	CartSink      UpstreamConfig
	Storefront    StorefrontConfig
	Worker        WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// UpstreamConfig contains connection parameters for an upstream HTTP service.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// StorefrontConfig contains view-model tuning for the browsing surface.
type StorefrontConfig struct {
	// CategoryScope is the fixed category constant sent upstream for this
	// storefront view (e.g. "womens").
	CategoryScope string
	// SelectLoadingDelay is the fixed duration the loading affordance stays
	// up after a category selection.
	SelectLoadingDelay time.Duration
	// SessionTTL is how long an idle view session is kept before eviction.
	SessionTTL time.Duration
	// SectionCacheTTL is how long cached marketing sections stay fresh.
	SectionCacheTTL time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	SectionRefreshInterval time.Duration
	SessionSweepInterval   time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	var err error

	// Upstream services
	cfg.ProductSource = UpstreamConfig{
		BaseURL: getEnv("PRODUCT_SOURCE_URL", ""),
		APIKey:  getEnv("PRODUCT_SOURCE_API_KEY", ""),
	}
	if cfg.ProductSource.Timeout, err = parseDurationEnv("PRODUCT_SOURCE_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_SOURCE_TIMEOUT: %w", err)
	}
	cfg.CartSink = UpstreamConfig{
		BaseURL: getEnv("CART_SINK_URL", ""),
		APIKey:  getEnv("CART_SINK_API_KEY", ""),
	}
	if cfg.CartSink.Timeout, err = parseDurationEnv("CART_SINK_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid CART_SINK_TIMEOUT: %w", err)
	}

	// Storefront view model
	cfg.Storefront.CategoryScope = getEnv("STOREFRONT_CATEGORY_SCOPE", "womens")
	if cfg.Storefront.SelectLoadingDelay, err = parseDurationEnv("STOREFRONT_SELECT_LOADING_DELAY", "300ms"); err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_SELECT_LOADING_DELAY: %w", err)
	}
	if cfg.Storefront.SessionTTL, err = parseDurationEnv("STOREFRONT_SESSION_TTL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_SESSION_TTL: %w", err)
	}
	if cfg.Storefront.SectionCacheTTL, err = parseDurationEnv("STOREFRONT_SECTION_CACHE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid STOREFRONT_SECTION_CACHE_TTL: %w", err)
	}

	// Workers (durations)
	if cfg.Worker.SectionRefreshInterval, err = parseDurationEnv("SECTION_REFRESH_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid SECTION_REFRESH_INTERVAL: %w", err)
	}
	if cfg.Worker.SessionSweepInterval, err = parseDurationEnv("SESSION_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}
	if cfg.ProductSource.BaseURL == "" {
		return nil, errors.New("PRODUCT_SOURCE_URL must be set")
	}
	if cfg.CartSink.BaseURL == "" {
		return nil, errors.New("CART_SINK_URL must be set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
