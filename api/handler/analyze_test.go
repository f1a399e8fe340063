package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/proflens/proflens/models"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeInvalidInput, http.StatusBadRequest},
		{models.ErrCodeUnauthorized, http.StatusUnauthorized},
		{models.ErrCodeNotFound, http.StatusNotFound},
		{models.ErrCodeChallengeRequired, http.StatusConflict},
		{models.ErrCodeRateLimited, http.StatusTooManyRequests},
		{models.ErrCodeLaunch, http.StatusBadGateway},
		{models.ErrCodeCapture, http.StatusBadGateway},
		{models.ErrCodeInitFailed, http.StatusServiceUnavailable},
		{models.ErrCodeConfiguration, http.StatusServiceUnavailable},
		{models.ErrCodeNavigationTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeAnalysisTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := models.NewCaptureError(tt.code, "boom", nil)
			if got := mapErrorToStatus(e); got != tt.want {
				t.Errorf("mapErrorToStatus(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestValidateProfileURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"standard profile", "https://www.linkedin.com/in/someone", true},
		{"no www", "https://linkedin.com/in/someone/", true},
		{"company page", "https://www.linkedin.com/company/acme", false},
		{"other site", "https://example.com/in/someone", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.AnalyzeRequest{ProfileURL: tt.url}
			err := req.ValidateProfileURL()
			if tt.ok && err != nil {
				t.Errorf("ValidateProfileURL(%q) = %v, want nil", tt.url, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("ValidateProfileURL(%q) = nil, want error", tt.url)
				}
				if err.Code != models.ErrCodeInvalidInput {
					t.Errorf("code = %s, want %s", err.Code, models.ErrCodeInvalidInput)
				}
				if !strings.Contains(err.Message, "linkedin.com/in/") {
					t.Errorf("message should explain the expected shape, got %q", err.Message)
				}
			}
		})
	}
}
