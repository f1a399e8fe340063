package capture

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/proflens/proflens/models"
	"golang.org/x/sync/semaphore"
)

// Session is one open browser session. The workflow drives it through the
// fixed step order and guarantees Close on every exit path.
type Session interface {
	Authenticate(ctx context.Context) error
	NavigateToProfile(ctx context.Context, profileURL string) error
	ExpandContent(ctx context.Context)
	Capture(ctx context.Context) (*models.CaptureArtifact, error)
	Close()
}

// Driver opens sessions. The browser package provides the real
// implementation; tests substitute fakes.
type Driver interface {
	Open(ctx context.Context) (Session, error)
}

// Workflow sequences one capture end to end:
//
//	Open → Authenticate → NavigateToProfile → ExpandContent → Capture → Close
//
// There are no retries at this layer. A failed capture is reported to the
// caller rather than silently retried, because repeated login attempts
// against LinkedIn can trigger account lockouts.
type Workflow struct {
	driver      Driver
	sem         *semaphore.Weighted
	maxSessions int
	active      atomic.Int32
}

// New creates a Workflow with an admission gate bounding concurrent browser
// sessions. Each session is a full Chrome process, so the bound is small.
func New(driver Driver, maxSessions int) *Workflow {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &Workflow{
		driver:      driver,
		sem:         semaphore.NewWeighted(int64(maxSessions)),
		maxSessions: maxSessions,
	}
}

// Stats returns a snapshot of session admission state.
func (w *Workflow) Stats() models.SessionStats {
	return models.SessionStats{
		MaxSessions:    w.maxSessions,
		ActiveSessions: int(w.active.Load()),
	}
}

// Run executes one capture workflow for the given profile URL and returns
// the screenshot artifact. Exactly one session is opened, and it is closed
// regardless of where a failure occurs.
func (w *Workflow) Run(ctx context.Context, profileURL string) (*models.CaptureArtifact, error) {
	// ── Admission gate ────────────────────────────────────────────────
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeNavigationTimeout,
			"timed out waiting for a browser session slot",
			err,
		)
	}
	defer w.sem.Release(1)

	w.active.Add(1)
	defer w.active.Add(-1)

	start := time.Now()
	slog.Info("capture workflow started", "profile_url", profileURL)

	// ── Scoped session ────────────────────────────────────────────────
	session, err := w.driver.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.Authenticate(ctx); err != nil {
		return nil, err
	}
	if err := session.NavigateToProfile(ctx, profileURL); err != nil {
		return nil, err
	}

	// Best-effort by contract: never fails the workflow.
	session.ExpandContent(ctx)

	artifact, err := session.Capture(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("capture workflow finished",
		"profile_url", profileURL,
		"artifact", artifact.FilePath,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return artifact, nil
}
