// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes client settings such
// as the remote API base URL, HTTP timeouts, cache validity windows, durable
// storage location, logging, rate limiting, and observability.
package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// APIConfig defines how the remote news API is reached.
type APIConfig struct {
	BaseURL   string        // API_BASE_URL, e.g. "http://localhost:8080/api/v1"
	Timeout   time.Duration // HTTP_TIMEOUT per request
	UserAgent string        // USER_AGENT sent with every request
}

// CacheConfig defines per-collection cache validity windows. A cached
// collection older than its window is considered stale and refetched.
type CacheConfig struct {
	ArticlesTTL time.Duration // ARTICLES_CACHE_TTL (articles list)
	TaxonomyTTL time.Duration // TAXONOMY_CACHE_TTL (tags, categories, languages)
}

// RateConfig bounds the client-side request rate against the remote API.
type RateConfig struct {
	RPS   float64 // RATE_RPS tokens per second (0 disables limiting)
	Burst int     // RATE_BURST bucket size (>= 1)
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-news-client")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the client.
type Config struct {
	// Remote API
	API APIConfig

	// Caching
	Cache CacheConfig

	// Durable client storage (SQLite key/value file)
	StoragePath string // STORAGE_PATH

	// Defaults applied when durable storage holds no value
	DefaultLanguage string // DEFAULT_LANGUAGE, BCP 47-ish locale code
	DefaultDarkMode bool   // DEFAULT_DARK_MODE

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Rate limiting
	Rate RateConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:   strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080/api/v1"), "/"),
			Timeout:   getdur("HTTP_TIMEOUT", 10*time.Second),
			UserAgent: getenv("USER_AGENT", "go-news-client"),
		},
		Cache: CacheConfig{
			ArticlesTTL: getdur("ARTICLES_CACHE_TTL", 5*time.Minute),
			TaxonomyTTL: getdur("TAXONOMY_CACHE_TTL", 10*time.Minute),
		},
		StoragePath:     getenv("STORAGE_PATH", "newsclient.db"),
		DefaultLanguage: getenv("DEFAULT_LANGUAGE", "en"),
		DefaultDarkMode: getbool("DEFAULT_DARK_MODE", false),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		Rate: RateConfig{
			RPS:   getfloat("RATE_RPS", 10.0),
			Burst: getint("RATE_BURST", 20),
		},

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-news-client"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, errors.New("API_BASE_URL must be an absolute http(s) URL")
	}
	if cfg.API.Timeout <= 0 {
		return cfg, errors.New("HTTP_TIMEOUT must be a positive duration")
	}
	if cfg.Cache.ArticlesTTL <= 0 || cfg.Cache.TaxonomyTTL <= 0 {
		return cfg, errors.New("cache TTLs must be positive durations")
	}
	if strings.TrimSpace(cfg.StoragePath) == "" {
		return cfg, errors.New("STORAGE_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		return cfg, errors.New("DEFAULT_LANGUAGE must not be empty")
	}
	if cfg.Rate.RPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.Rate.Burst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
