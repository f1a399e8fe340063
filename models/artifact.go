package models

import "time"

// CaptureArtifact is the full-page screenshot produced by one capture.
// It is written once by the browser driver; everything downstream only
// reads it.
type CaptureArtifact struct {
	// FilePath is the absolute or working-dir-relative path on disk.
	FilePath string `json:"file_path"`

	// CapturedAt is when the screenshot was taken.
	CapturedAt time.Time `json:"captured_at"`
}
