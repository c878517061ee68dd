package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

const (
	defaultDatabaseURL     = "travel.db"
	defaultHTTPAddr        = ":8080"
	defaultDBDebug         = "false"
	defaultShutdownTimeout = "10s"
)

type Config struct {
	AppEnv             string
	DatabaseURL        string
	HTTPAddr           string
	DBDebug            bool
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// SeedRandom fixes the seeder's random source; zero means seed from the clock.
	SeedRandom int64
}

// Load reads the process environment, after merging an optional .env file
// from the working directory. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DBDebug = parseBoolEnv("DB_DEBUG", defaultDBDebug)
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(os.Getenv("SEED_RANDOM")); raw != "" {
		cfg.SeedRandom, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_RANDOM value %q: %w", raw, err)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s http_addr=%s db_debug=%t", cfg.AppEnv, cfg.HTTPAddr, cfg.DBDebug)

	return cfg, nil
}

// LogLevel is the gorm SQL log level for this configuration.
func (c *Config) LogLevel() logger.LogLevel {
	if c.DBDebug {
		return logger.Info
	}
	return logger.Warn
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.DBDebug {
			return fmt.Errorf("in prod/release DB_DEBUG must be false")
		}
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// parseListEnv splits a comma separated variable, e.g.
// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
