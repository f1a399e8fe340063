package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/proflens/proflens/analysis"
	"github.com/proflens/proflens/browser"
	"github.com/proflens/proflens/capture"
	"github.com/proflens/proflens/config"
	"github.com/proflens/proflens/models"
	"github.com/proflens/proflens/webhook"
)

// Version is reported by the status endpoint.
const Version = "0.1.0"

type initState int

const (
	stateUninitialized initState = iota
	stateReady
	stateFailed
)

func (s initState) String() string {
	switch s {
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Supervisor owns the capture workflow and the analyzer, with lazy
// retry-bounded initialization: nothing browser-related is paid for until
// the first capture request, and after InitMaxAttempts failed attempts the
// supervisor pins itself failed instead of hammering the environment.
//
// State machine: Uninitialized → Ready | Failed(attempts).
type Supervisor struct {
	cfg       *config.Config
	startTime time.Time

	mu       sync.Mutex
	state    initState
	attempts int
	workflow *capture.Workflow
	analyzer analysis.Analyzer
}

// New creates a Supervisor. Initialization is deferred to the first capture.
func New(cfg *config.Config) *Supervisor {
	return &Supervisor{
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// rodDriver adapts the concrete browser driver to the workflow's Driver
// interface (the browser package stays ignorant of the capture package).
type rodDriver struct {
	d *browser.Driver
}

func (r rodDriver) Open(ctx context.Context) (capture.Session, error) {
	s, err := r.d.Open(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ensureReady performs lazy initialization and returns the workflow.
func (s *Supervisor) ensureReady(ctx context.Context) (*capture.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateReady:
		return s.workflow, nil
	case stateFailed:
		return nil, models.NewCaptureError(
			models.ErrCodeInitFailed,
			fmt.Sprintf("initialization failed after %d attempts; restart the service to retry", s.attempts),
			nil,
		)
	}

	s.attempts++
	if err := s.initialize(ctx); err != nil {
		slog.Error("initialization attempt failed",
			"attempt", s.attempts,
			"max_attempts", s.cfg.Capture.InitMaxAttempts,
			"error", err,
		)
		if s.attempts >= s.cfg.Capture.InitMaxAttempts {
			s.state = stateFailed
		}
		return nil, err
	}

	s.state = stateReady
	slog.Info("supervisor initialized", "attempts", s.attempts, "analyzer", s.analyzerName())
	return s.workflow, nil
}

// initialize probes the environment once: artifact directories, a usable
// browser binary, and the analyzer backend. Per-session Chrome launches
// still happen inside the workflow.
func (s *Supervisor) initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.Capture.ScreenshotDir, 0o755); err != nil {
		return models.NewCaptureError(models.ErrCodeConfiguration, "cannot create screenshot directory", err)
	}
	if err := os.MkdirAll(s.cfg.Analysis.OutputDir, 0o755); err != nil {
		return models.NewCaptureError(models.ErrCodeConfiguration, "cannot create analysis output directory", err)
	}

	if s.cfg.Browser.BrowserBin != "" {
		if _, err := os.Stat(s.cfg.Browser.BrowserBin); err != nil {
			return models.NewCaptureError(
				models.ErrCodeLaunch,
				"configured browser binary not found: "+s.cfg.Browser.BrowserBin,
				err,
			)
		}
	} else if _, found := launcher.LookPath(); !found {
		return models.NewCaptureError(
			models.ErrCodeLaunch,
			"no browser binary found; install Chrome/Chromium or set PROFLENS_BROWSER_BIN",
			nil,
		)
	}

	driver := browser.NewDriver(s.cfg.Browser, s.cfg.Capture, s.cfg.LinkedIn)
	s.workflow = capture.New(rodDriver{d: driver}, s.cfg.Capture.MaxSessions)

	analyzer, err := s.buildAnalyzer(ctx)
	if err != nil {
		return err
	}
	s.analyzer = analyzer
	return nil
}

// buildAnalyzer picks the analysis backend: the external script when
// configured, the in-process Gemini analyzer otherwise. No API key means no
// analyzer at all; the capability is simply off.
func (s *Supervisor) buildAnalyzer(ctx context.Context) (analysis.Analyzer, error) {
	a := s.cfg.Analysis
	if a.ScriptPath != "" {
		return analysis.NewScriptInvoker(a.Interpreter, a.ScriptPath, a.APIKey, a.OutputDir, a.Timeout), nil
	}
	if a.APIKey == "" {
		return nil, nil
	}
	analyzer, err := analysis.NewGeminiAnalyzer(ctx, a.APIKey, a.Model, a.OutputDir, a.Timeout)
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeConfiguration, "failed to initialize gemini analyzer", err)
	}
	return analyzer, nil
}

func (s *Supervisor) analyzerName() string {
	if s.analyzer == nil {
		return ""
	}
	return s.analyzer.Name()
}

// Analyze runs the full capture + analysis pipeline for one profile URL.
// The returned error is capture-phase only; analysis problems degrade to a
// warning on a successful response.
func (s *Supervisor) Analyze(ctx context.Context, profileURL string) (*models.AnalyzeResponse, error) {
	return s.run(ctx, profileURL, true)
}

// QuickScreenshot captures the profile without invoking analysis.
func (s *Supervisor) QuickScreenshot(ctx context.Context, profileURL string) (*models.AnalyzeResponse, error) {
	return s.run(ctx, profileURL, false)
}

func (s *Supervisor) run(ctx context.Context, profileURL string, withAnalysis bool) (*models.AnalyzeResponse, error) {
	totalStart := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Capture.RequestTimeout)
	defer cancel()

	wf, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	// ── Capture ───────────────────────────────────────────────────────
	captureStart := time.Now()
	artifact, err := wf.Run(ctx, profileURL)
	captureMs := time.Since(captureStart).Milliseconds()
	if err != nil {
		s.notify(webhook.EventCaptureFailed, profileURL, map[string]string{"error": err.Error()})
		return nil, err
	}

	timing := models.TimingInfo{CaptureMs: captureMs}

	// ── Analysis (optional, never fails the request) ──────────────────
	var (
		result      *analysis.Result
		analysisErr error
	)
	if withAnalysis {
		s.mu.Lock()
		analyzer := s.analyzer
		s.mu.Unlock()

		if analyzer == nil {
			result = analysis.SkippedResult()
		} else {
			analysisStart := time.Now()
			result, analysisErr = analyzer.Analyze(ctx, artifact.FilePath)
			timing.AnalysisMs = time.Since(analysisStart).Milliseconds()
		}
	} else {
		result = analysis.SkippedResult()
	}

	timing.TotalMs = time.Since(totalStart).Milliseconds()
	resp := aggregate(artifact, result, analysisErr, timing)

	if analysisErr != nil {
		s.notify(webhook.EventAnalysisFailed, profileURL, map[string]string{"error": analysisErr.Error()})
	} else if withAnalysis {
		s.notify(webhook.EventAnalysisCompleted, profileURL, resp)
	}
	return resp, nil
}

func (s *Supervisor) notify(eventType, profileURL string, data any) {
	if s.cfg.Webhook.URL == "" {
		return
	}
	webhook.DeliverAsync(s.cfg.Webhook.URL, s.cfg.Webhook.Secret, &webhook.Event{
		Type:       eventType,
		ProfileURL: profileURL,
		Timestamp:  time.Now().Unix(),
		Data:       data,
	})
}

// Status reports capability flags and session state. For unchanged
// configuration the flags are stable across calls.
func (s *Supervisor) Status() models.StatusResponse {
	s.mu.Lock()
	state := s.state
	wf := s.workflow
	backend := s.analyzerName()
	s.mu.Unlock()

	if backend == "" && s.cfg.AnalysisEnabled() {
		// Not initialized yet; report the backend that will be built.
		if s.cfg.Analysis.ScriptPath != "" {
			backend = "script"
		} else {
			backend = "gemini"
		}
	}

	status := "healthy"
	if state == stateFailed {
		status = "degraded"
	}

	sessions := models.SessionStats{MaxSessions: s.cfg.Capture.MaxSessions}
	if wf != nil {
		sessions = wf.Stats()
	}

	return models.StatusResponse{
		Status:    status,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Version:   Version,
		InitState: state.String(),
		Capabilities: models.Capabilities{
			CaptureReady:      s.cfg.LinkedIn.Email != "" && s.cfg.LinkedIn.Password != "",
			AnalysisAvailable: s.cfg.AnalysisEnabled(),
			AnalysisBackend:   backend,
		},
		Sessions: sessions,
	}
}

// Debug reports configuration with secrets reduced to presence booleans.
func (s *Supervisor) Debug() models.DebugResponse {
	return models.DebugResponse{
		Mode:              s.cfg.Server.Mode,
		Headless:          s.cfg.Browser.Headless,
		BrowserBin:        s.cfg.Browser.BrowserBin,
		ScreenshotDir:     s.cfg.Capture.ScreenshotDir,
		AnalysisDir:       s.cfg.Analysis.OutputDir,
		AnalysisScript:    s.cfg.Analysis.ScriptPath,
		LinkedInEmailSet:  s.cfg.LinkedIn.Email != "",
		LinkedInPassSet:   s.cfg.LinkedIn.Password != "",
		GeminiKeySet:      s.cfg.Analysis.APIKey != "",
		WebhookConfigured: s.cfg.Webhook.URL != "",
	}
}
