package models

import "strings"

// AnalyzeRequest is the payload for POST /api/v1/analyze and
// POST /api/v1/quick-screenshot.
type AnalyzeRequest struct {
	// ProfileURL is the LinkedIn profile to capture. Required.
	ProfileURL string `json:"profile_url" binding:"required,url"`
}

// ValidateProfileURL checks that the URL points at a LinkedIn profile page.
// The capture workflow is never invoked for anything else.
func (r *AnalyzeRequest) ValidateProfileURL() *CaptureError {
	if !strings.Contains(r.ProfileURL, "linkedin.com/in/") {
		return NewCaptureError(
			ErrCodeInvalidInput,
			"profile_url must be a LinkedIn profile (linkedin.com/in/...)",
			nil,
		)
	}
	return nil
}
