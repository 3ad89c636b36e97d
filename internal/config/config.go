package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	GoogleAPIKey    string
	JWTSecret       string
	Port            string
	ScanWorkerURL   string
	OutputDir       string
	PhoneRegion     string
	SearchRadius    int
	MaxResults      int
	RateLimitSearch RateLimitConfig
	TokenTTL        time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		Port:          getEnv("PORT", "8080"),
		ScanWorkerURL: os.Getenv("SCAN_WORKER_URL"),
		OutputDir:     getEnv("OUTPUT_DIR", "output"),
		PhoneRegion:   getEnv("DEFAULT_PHONE_REGION", "GB"),
		TokenTTL:      parseDuration(getEnv("JWT_TTL", "24h")),
	}

	radius, err := parsePositiveInt(getEnv("SEARCH_RADIUS", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_RADIUS value: %w", err)
	}
	cfg.SearchRadius = radius

	maxResults, err := parsePositiveInt(getEnv("MAX_RESULTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_RESULTS value: %w", err)
	}
	cfg.MaxResults = maxResults

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
