package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig aggregates runtime configuration. Everything comes from
// environment variables so deployments never touch the binary.
type AppConfig struct {
	HTTPAddr string

	// Postgres: either DATABASE_URL or the discrete DB_* variables.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisAddr string
	RedisDB   int

	// Rate limit applied to payment creation.
	PayRateLimit  int
	PayRateWindow time.Duration

	// Interval of the bulk sale-expiry sweep.
	SaleSweepInterval time.Duration

	UploadsDir string
}

// Load reads and validates configuration, falling back to defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:          ":" + getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "storefront"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           0,
		PayRateLimit:      10,
		PayRateWindow:     time.Minute,
		SaleSweepInterval: time.Hour,
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("PAY_RATE_LIMIT", cfg.PayRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid PAY_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("PAY_RATE_LIMIT must be > 0")
	}
	cfg.PayRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("PAY_RATE_WINDOW_SEC", int(cfg.PayRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid PAY_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("PAY_RATE_WINDOW_SEC must be > 0")
	}
	cfg.PayRateWindow = time.Duration(rateWindowSec) * time.Second

	sweepMin, err := getEnvInt("SALE_SWEEP_INTERVAL_MIN", int(cfg.SaleSweepInterval.Minutes()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid SALE_SWEEP_INTERVAL_MIN: %w", err)
	}
	if sweepMin <= 0 {
		return AppConfig{}, fmt.Errorf("SALE_SWEEP_INTERVAL_MIN must be > 0")
	}
	cfg.SaleSweepInterval = time.Duration(sweepMin) * time.Minute

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
