package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	HTTPPort int

	DBDriver string
	DBPath   string

	RedisAddr        string
	ResponseCacheTTL time.Duration

	CacheTTL      time.Duration
	CacheCapacity int

	PageSize           int
	MaxParallelFetches int
	FetchBatchPause    time.Duration
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		DBDriver: getEnv("DB_DRIVER", "sqlite3"),
		DBPath:   getEnv("DB_PATH", "./data/fitness.db"),

		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		ResponseCacheTTL: getEnvDuration("RESPONSE_CACHE_TTL", 10*time.Minute),

		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheCapacity: getEnvInt("CACHE_CAPACITY", 500),

		PageSize:           getEnvInt("PAGE_SIZE", 50),
		MaxParallelFetches: getEnvInt("MAX_PARALLEL_FETCHES", 5),
		FetchBatchPause:    getEnvDuration("FETCH_BATCH_PAUSE", 100*time.Millisecond),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
