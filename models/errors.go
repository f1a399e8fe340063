package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	// Capture-phase errors abort the whole request and are never retried.
	ErrCodeLaunch            = "LAUNCH_FAILED"
	ErrCodeNavigationTimeout = "NAVIGATION_TIMEOUT"
	ErrCodeChallengeRequired = "CHALLENGE_REQUIRED"
	ErrCodeCapture           = "CAPTURE_FAILED"

	// Analysis-phase errors degrade the response to screenshot-only.
	ErrCodeAnalysis        = "ANALYSIS_FAILED"
	ErrCodeAnalysisTimeout = "ANALYSIS_TIMEOUT"

	ErrCodeConfiguration = "CONFIGURATION"
	ErrCodeInitFailed    = "INIT_FAILED"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CaptureError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type CaptureError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(code, message string, err error) *CaptureError {
	return &CaptureError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
// Wrapped causes stay internal; only code and message are exposed.
func (e *CaptureError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
