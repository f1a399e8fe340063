package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/proflens/proflens/models"
)

// Capture takes a full-page PNG screenshot and writes it under the
// configured screenshot directory.
//
// Filenames carry a timestamp plus a random component because the directory
// is shared across concurrent requests and nothing locks it.
func (s *Session) Capture(ctx context.Context) (*models.CaptureArtifact, error) {
	p := s.page.Context(ctx)

	data, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeCapture,
			"full-page screenshot failed",
			err,
		)
	}

	if err := os.MkdirAll(s.captureCfg.ScreenshotDir, 0o755); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeCapture,
			"failed to create screenshot directory",
			err,
		)
	}

	now := time.Now()
	name := fmt.Sprintf("profile_%s_%s.png",
		now.Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	path := filepath.Join(s.captureCfg.ScreenshotDir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeCapture,
			"failed to write screenshot",
			err,
		)
	}

	return &models.CaptureArtifact{
		FilePath:   path,
		CapturedAt: now,
	}, nil
}
