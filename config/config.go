package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	Analysis  AnalysisConfig
	LinkedIn  LinkedInConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Width and Height set the browser viewport before capture.
	Width  int // default: 1920
	Height int // default: 1080
}

// CaptureConfig controls the capture workflow.
type CaptureConfig struct {
	// ScreenshotDir is where full-page screenshots are written.
	ScreenshotDir string // default: "screenshots"

	// MaxSessions bounds concurrent browser sessions.
	MaxSessions int // default: 2

	// RequestTimeout is the hard deadline for one capture workflow.
	RequestTimeout time.Duration // default: 3m

	// NavigationTimeout is the max time for a single page navigation.
	NavigationTimeout time.Duration // default: 45s

	// LandmarkTimeout is how long to probe for the logged-in landmark
	// before assuming the session is not authenticated.
	LandmarkTimeout time.Duration // default: 8s

	// ScrollMaxRounds caps the scroll-to-load loop.
	ScrollMaxRounds int // default: 12

	// ExpandMaxClicks caps how many "see more" affordances get clicked.
	ExpandMaxClicks int // default: 10

	// InitMaxAttempts bounds lazy browser initialisation retries before
	// the supervisor pins itself failed.
	InitMaxAttempts int // default: 3
}

// AnalysisConfig controls the optional AI analysis capability.
type AnalysisConfig struct {
	// APIKey is the Gemini API key. Empty disables analysis entirely.
	APIKey string

	// Model is the Gemini model used by the in-process analyzer.
	Model string // default: "gemini-2.0-flash"

	// ScriptPath, when set, routes analysis through the external script
	// instead of the in-process analyzer.
	ScriptPath string

	// Interpreter runs the external script. default: "python3"
	Interpreter string

	// OutputDir is where analysis artifacts are written.
	OutputDir string // default: "analysis_output"

	// Timeout is the wall-clock limit for one analysis run.
	Timeout time.Duration // default: 2m
}

// LinkedInConfig holds the mandatory target-site credentials.
type LinkedInConfig struct {
	Email    string
	Password string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// WebhookConfig controls completion notifications.
type WebhookConfig struct {
	// URL is the endpoint notified on analysis completion. Empty disables.
	URL string

	// Secret signs webhook payloads with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PROFLENS_HOST", "0.0.0.0"),
			Port: envIntOr("PROFLENS_PORT", 8080),
			Mode: envOr("PROFLENS_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("PROFLENS_HEADLESS", true),
			NoSandbox:  envBoolOr("PROFLENS_NO_SANDBOX", false),
			BrowserBin: os.Getenv("PROFLENS_BROWSER_BIN"),
			Width:      envIntOr("PROFLENS_VIEWPORT_WIDTH", 1920),
			Height:     envIntOr("PROFLENS_VIEWPORT_HEIGHT", 1080),
		},
		Capture: CaptureConfig{
			ScreenshotDir:     envOr("PROFLENS_SCREENSHOT_DIR", "screenshots"),
			MaxSessions:       envIntOr("PROFLENS_MAX_SESSIONS", 2),
			RequestTimeout:    envDurationOr("PROFLENS_REQUEST_TIMEOUT", 3*time.Minute),
			NavigationTimeout: envDurationOr("PROFLENS_NAV_TIMEOUT", 45*time.Second),
			LandmarkTimeout:   envDurationOr("PROFLENS_LANDMARK_TIMEOUT", 8*time.Second),
			ScrollMaxRounds:   envIntOr("PROFLENS_SCROLL_MAX_ROUNDS", 12),
			ExpandMaxClicks:   envIntOr("PROFLENS_EXPAND_MAX_CLICKS", 10),
			InitMaxAttempts:   envIntOr("PROFLENS_INIT_MAX_ATTEMPTS", 3),
		},
		Analysis: AnalysisConfig{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       envOr("PROFLENS_GEMINI_MODEL", "gemini-2.0-flash"),
			ScriptPath:  os.Getenv("PROFLENS_ANALYSIS_SCRIPT"),
			Interpreter: envOr("PROFLENS_ANALYSIS_INTERPRETER", "python3"),
			OutputDir:   envOr("PROFLENS_ANALYSIS_DIR", "analysis_output"),
			Timeout:     envDurationOr("PROFLENS_ANALYSIS_TIMEOUT", 2*time.Minute),
		},
		LinkedIn: LinkedInConfig{
			Email:    os.Getenv("LINKEDIN_EMAIL"),
			Password: os.Getenv("LINKEDIN_PASSWORD"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PROFLENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PROFLENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PROFLENS_RATE_RPS", 1.0),
			Burst:             envIntOr("PROFLENS_RATE_BURST", 3),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("PROFLENS_WEBHOOK_URL"),
			Secret: os.Getenv("PROFLENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("PROFLENS_LOG_LEVEL", "info"),
			Format: envOr("PROFLENS_LOG_FORMAT", "json"),
		},
	}
}

// Validate checks the mandatory settings. The LinkedIn credentials are
// required for the service to operate at all; the Gemini key is not (its
// absence only disables the analysis capability).
func (c *Config) Validate() error {
	if c.LinkedIn.Email == "" {
		return fmt.Errorf("LINKEDIN_EMAIL is required")
	}
	if c.LinkedIn.Password == "" {
		return fmt.Errorf("LINKEDIN_PASSWORD is required")
	}
	if c.Capture.MaxSessions < 1 {
		return fmt.Errorf("PROFLENS_MAX_SESSIONS must be at least 1")
	}
	return nil
}

// AnalysisEnabled reports whether the optional analysis capability is usable.
func (c *Config) AnalysisEnabled() bool {
	return c.Analysis.APIKey != ""
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
