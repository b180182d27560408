package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Fetch     FetchConfig
	Extract   ExtractConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// FetchConfig controls outbound HTTP fetches.
type FetchConfig struct {
	// Timeout is the deadline for a single fetch. default: 10s
	Timeout time.Duration

	// UserAgent is the default browser-like user agent.
	UserAgent string

	// MaxBodyBytes caps how much of a response body is read. default: 10 MB
	MaxBodyBytes int64
}

// ExtractConfig controls extraction behavior.
type ExtractConfig struct {
	// BodyTextLimit is the character (rune) cap for generic body text.
	// default: 5000
	BodyTextLimit int

	// InstagramRPS paces outbound calls to Instagram endpoints
	// (embed page + oEmbed fallback). default: 1 request/second
	InstagramRPS float64

	// InstagramBurst is the pacing burst size. default: 2
	InstagramBurst int
}

// ServerConfig controls the HTTP server started by the serve command.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication. default: false
	Enabled bool

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting on the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key. default: 5
	RequestsPerSecond float64

	// Burst is the maximum burst size per API key. default: 10
	Burst int
}

// CacheConfig controls the extraction response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses. default: 1000
	MaxEntries int
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// chromeUA mimics a common desktop browser. Some sites (Instagram included)
// serve degraded or empty pages to obvious non-browser agents.
const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:      envDurationOr("LINKEXTRACT_FETCH_TIMEOUT", 10*time.Second),
			UserAgent:    envOr("LINKEXTRACT_USER_AGENT", chromeUA),
			MaxBodyBytes: envInt64Or("LINKEXTRACT_MAX_BODY_BYTES", 10<<20),
		},
		Extract: ExtractConfig{
			BodyTextLimit:  envIntOr("LINKEXTRACT_BODY_TEXT_LIMIT", 5000),
			InstagramRPS:   envFloatOr("LINKEXTRACT_INSTAGRAM_RPS", 1.0),
			InstagramBurst: envIntOr("LINKEXTRACT_INSTAGRAM_BURST", 2),
		},
		Server: ServerConfig{
			Host: envOr("LINKEXTRACT_HOST", "0.0.0.0"),
			Port: envIntOr("LINKEXTRACT_PORT", 8080),
			Mode: envOr("LINKEXTRACT_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("LINKEXTRACT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("LINKEXTRACT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LINKEXTRACT_RATE_RPS", 5.0),
			Burst:             envIntOr("LINKEXTRACT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("LINKEXTRACT_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("LINKEXTRACT_LOG_LEVEL", "info"),
			Format: envOr("LINKEXTRACT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
