package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv marks the test as non-parallel and restores the previous
	// values; clear everything Load reads so defaults apply.
	for _, key := range []string{
		"PROFLENS_HOST", "PROFLENS_PORT", "PROFLENS_MODE",
		"PROFLENS_HEADLESS", "PROFLENS_MAX_SESSIONS",
		"PROFLENS_REQUEST_TIMEOUT", "PROFLENS_SCREENSHOT_DIR",
		"GEMINI_API_KEY", "PROFLENS_ANALYSIS_SCRIPT",
		"LINKEDIN_EMAIL", "LINKEDIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want release", cfg.Server.Mode)
	}
	if !cfg.Browser.Headless {
		t.Error("Browser.Headless should default to true")
	}
	if cfg.Capture.MaxSessions != 2 {
		t.Errorf("Capture.MaxSessions = %d, want 2", cfg.Capture.MaxSessions)
	}
	if cfg.Capture.RequestTimeout != 3*time.Minute {
		t.Errorf("Capture.RequestTimeout = %v, want 3m", cfg.Capture.RequestTimeout)
	}
	if cfg.Capture.ScreenshotDir != "screenshots" {
		t.Errorf("Capture.ScreenshotDir = %q", cfg.Capture.ScreenshotDir)
	}
	if cfg.Analysis.Model != "gemini-2.0-flash" {
		t.Errorf("Analysis.Model = %q", cfg.Analysis.Model)
	}
	if cfg.Analysis.Interpreter != "python3" {
		t.Errorf("Analysis.Interpreter = %q", cfg.Analysis.Interpreter)
	}
	if cfg.AnalysisEnabled() {
		t.Error("analysis should be disabled without GEMINI_API_KEY")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROFLENS_PORT", "9090")
	t.Setenv("PROFLENS_MAX_SESSIONS", "5")
	t.Setenv("PROFLENS_REQUEST_TIMEOUT", "90s")
	t.Setenv("PROFLENS_HEADLESS", "false")
	t.Setenv("PROFLENS_API_KEYS", "key-a, key-b,, key-c")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Capture.MaxSessions != 5 {
		t.Errorf("Capture.MaxSessions = %d, want 5", cfg.Capture.MaxSessions)
	}
	if cfg.Capture.RequestTimeout != 90*time.Second {
		t.Errorf("Capture.RequestTimeout = %v, want 90s", cfg.Capture.RequestTimeout)
	}
	if cfg.Browser.Headless {
		t.Error("Browser.Headless should be overridable to false")
	}
	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Auth.APIKeys) != len(want) {
		t.Fatalf("Auth.APIKeys = %v, want %v", cfg.Auth.APIKeys, want)
	}
	for i := range want {
		if cfg.Auth.APIKeys[i] != want[i] {
			t.Errorf("Auth.APIKeys[%d] = %q, want %q", i, cfg.Auth.APIKeys[i], want[i])
		}
	}
	if !cfg.AnalysisEnabled() {
		t.Error("analysis should be enabled with GEMINI_API_KEY set")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PROFLENS_PORT", "not-a-number")
	t.Setenv("PROFLENS_REQUEST_TIMEOUT", "soon")
	t.Setenv("PROFLENS_HEADLESS", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("malformed port should fall back to 8080, got %d", cfg.Server.Port)
	}
	if cfg.Capture.RequestTimeout != 3*time.Minute {
		t.Errorf("malformed duration should fall back to 3m, got %v", cfg.Capture.RequestTimeout)
	}
	if !cfg.Browser.Headless {
		t.Error("malformed bool should fall back to true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LinkedIn: LinkedInConfig{Email: "user@example.com", Password: "secret"},
			Capture:  CaptureConfig{MaxSessions: 2},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	c := valid()
	c.LinkedIn.Email = ""
	if err := c.Validate(); err == nil {
		t.Error("missing email should fail validation")
	}

	c = valid()
	c.LinkedIn.Password = ""
	if err := c.Validate(); err == nil {
		t.Error("missing password should fail validation")
	}

	c = valid()
	c.Capture.MaxSessions = 0
	if err := c.Validate(); err == nil {
		t.Error("zero max sessions should fail validation")
	}
}
