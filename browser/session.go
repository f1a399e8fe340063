package browser

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/proflens/proflens/config"
	"github.com/proflens/proflens/models"
)

// Driver opens browser sessions. Each session owns its own Chrome process
// and exactly one page; sessions are never pooled or reused across requests
// because the login state must not leak between callers.
type Driver struct {
	browserCfg config.BrowserConfig
	captureCfg config.CaptureConfig
	creds      config.LinkedInConfig
}

// NewDriver creates a Driver. No browser process is started here; Open does
// that per session.
func NewDriver(browserCfg config.BrowserConfig, captureCfg config.CaptureConfig, creds config.LinkedInConfig) *Driver {
	return &Driver{
		browserCfg: browserCfg,
		captureCfg: captureCfg,
		creds:      creds,
	}
}

// Session owns one Chrome process and one page for the duration of a capture.
// Close must be called exactly once on every exit path; it is idempotent so
// defers on multiple layers are safe.
type Session struct {
	launcher   *launcher.Launcher
	browser    *rod.Browser
	page       *rod.Page
	browserCfg config.BrowserConfig
	captureCfg config.CaptureConfig
	creds      config.LinkedInConfig
	closed     atomic.Bool
}

// Open launches a Chrome process with the hardened flag set and creates the
// session's single page.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Launch   – Chrome process with automation-masking flags
//  2. Connect  – CDP websocket
//  3. Page     – one tab, viewport sized for full-page capture
//  4. Stealth  – mask navigator.webdriver etc. (before any navigation!)
func (d *Driver) Open(ctx context.Context) (*Session, error) {
	// ── 1. Launch ─────────────────────────────────────────────────────
	l := launcher.New().
		Headless(d.browserCfg.Headless).
		NoSandbox(d.browserCfg.NoSandbox)

	if d.browserCfg.BrowserBin != "" {
		l = l.Bin(d.browserCfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeLaunch,
			"failed to launch browser",
			err,
		)
	}

	// ── 2. Connect ────────────────────────────────────────────────────
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, models.NewCaptureError(
			models.ErrCodeLaunch,
			"failed to connect to browser",
			err,
		)
	}

	// ── 3. Page ───────────────────────────────────────────────────────
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, models.NewCaptureError(
			models.ErrCodeLaunch,
			"failed to create page",
			err,
		)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             d.browserCfg.Width,
		Height:            d.browserCfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		slog.Warn("failed to set viewport, using browser default", "error", err)
	}

	// ── 4. Stealth ────────────────────────────────────────────────────
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	slog.Info("browser session opened", "controlURL", controlURL)

	return &Session{
		launcher:   l,
		browser:    b,
		page:       page,
		browserCfg: d.browserCfg,
		captureCfg: d.captureCfg,
		creds:      d.creds,
	}, nil
}

// Close releases the page and kills the Chrome process. Safe to call more
// than once; only the first call does work.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			slog.Debug("page close failed", "error", err)
		}
	}
	if err := s.browser.Close(); err != nil {
		slog.Debug("browser close failed", "error", err)
	}
	// Kill is the backstop against zombie Chrome processes when the CDP
	// connection is already gone.
	s.launcher.Kill()
	slog.Info("browser session closed")
}

// NavigateToProfile navigates to the target profile URL with a bounded
// timeout and waits for the DOM to settle.
func (s *Session) NavigateToProfile(ctx context.Context, profileURL string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.captureCfg.NavigationTimeout)
	defer cancel()

	p := s.page.Context(navCtx)
	if err := p.Navigate(profileURL); err != nil {
		return categorizeError(err, "navigation to profile failed")
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		// A DOM that never fully settles is still capturable.
		slog.Debug("profile DOM did not stabilise, proceeding", "error", err)
	}
	return nil
}

// categorizeError wraps raw errors into typed CaptureErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.CaptureError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCaptureError(models.ErrCodeNavigationTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCaptureError(models.ErrCodeNavigationTimeout, "request canceled", err)
	default:
		return models.NewCaptureError(models.ErrCodeNavigationTimeout, msg, err)
	}
}
