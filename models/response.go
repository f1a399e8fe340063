package models

import "encoding/json"

// AnalyzeResponse is the response for POST /api/v1/analyze and
// POST /api/v1/quick-screenshot. The shape is uniform regardless of which
// sub-steps ran; analysis fields are simply null when analysis was skipped
// or failed.
type AnalyzeResponse struct {
	// Success indicates whether a screenshot was captured. A failed or
	// skipped analysis does not flip this to false — the screenshot alone
	// is a deliverable.
	Success bool `json:"success"`

	// ScreenshotURL serves the captured artifact.
	ScreenshotURL string `json:"screenshot_url,omitempty"`

	// ScreenshotPath is the artifact filename on disk.
	ScreenshotPath string `json:"screenshot_path,omitempty"`

	// ReportURL serves the interactive HTML report, when analysis produced one.
	ReportURL string `json:"report_url,omitempty"`

	// AnalysisDataURL serves the raw analysis JSON, when present.
	AnalysisDataURL string `json:"analysis_data_url,omitempty"`

	// AnalysisData inlines the structured analysis, when present.
	AnalysisData json.RawMessage `json:"analysis_data,omitempty"`

	// Warning is set when the capture succeeded but analysis was skipped
	// or failed.
	Warning string `json:"warning,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// CaptureMs is the time spent in the browser workflow.
	CaptureMs int64 `json:"capture_ms,omitempty"`

	// AnalysisMs is the time spent in the analysis step.
	AnalysisMs int64 `json:"analysis_ms,omitempty"`
}

// StatusResponse is the response for GET /api/v1/status.
type StatusResponse struct {
	Status       string       `json:"status"` // "healthy" or "degraded"
	Uptime       string       `json:"uptime"`
	Version      string       `json:"version"`
	InitState    string       `json:"init_state"` // "uninitialized", "ready", "failed"
	Capabilities Capabilities `json:"capabilities"`
	Sessions     SessionStats `json:"sessions"`
}

// Capabilities reports which optional features are configured.
type Capabilities struct {
	// CaptureReady is true when the LinkedIn credentials are present.
	CaptureReady bool `json:"capture_ready"`

	// AnalysisAvailable is true when a Gemini API key is configured.
	AnalysisAvailable bool `json:"analysis_available"`

	// AnalysisBackend is "script", "gemini", or "" when unavailable.
	AnalysisBackend string `json:"analysis_backend,omitempty"`
}

// SessionStats reports browser session admission state.
type SessionStats struct {
	MaxSessions    int `json:"max_sessions"`
	ActiveSessions int `json:"active_sessions"`
}

// DebugResponse is the response for GET /api/v1/debug. Secrets are redacted.
type DebugResponse struct {
	Mode              string `json:"mode"`
	Headless          bool   `json:"headless"`
	BrowserBin        string `json:"browser_bin,omitempty"`
	ScreenshotDir     string `json:"screenshot_dir"`
	AnalysisDir       string `json:"analysis_dir"`
	AnalysisScript    string `json:"analysis_script,omitempty"`
	LinkedInEmailSet  bool   `json:"linkedin_email_set"`
	LinkedInPassSet   bool   `json:"linkedin_password_set"`
	GeminiKeySet      bool   `json:"gemini_key_set"`
	WebhookConfigured bool   `json:"webhook_configured"`
}
