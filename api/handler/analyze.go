package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proflens/proflens/models"
	"github.com/proflens/proflens/service"
)

// Analyze returns a handler for POST /api/v1/analyze.
//
// Orchestration flow:
//  1. Parse & validate request (the capture workflow is never invoked for
//     a non-LinkedIn URL).
//  2. Supervisor.Analyze → capture + optional analysis.
//  3. Return the aggregated result; capture-phase errors map to typed
//     4xx/5xx responses.
func Analyze(svc *service.Supervisor) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProfileRequest(c)
		if !ok {
			return
		}

		totalStart := time.Now()
		resp, err := svc.Analyze(c.Request.Context(), req.ProfileURL)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// QuickScreenshot returns a handler for POST /api/v1/quick-screenshot:
// the capture workflow alone, analysis never invoked.
func QuickScreenshot(svc *service.Supervisor) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProfileRequest(c)
		if !ok {
			return
		}

		totalStart := time.Now()
		resp, err := svc.QuickScreenshot(c.Request.Context(), req.ProfileURL)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		// Screenshot-only by request; the missing-key warning would mislead.
		resp.Warning = ""
		c.JSON(http.StatusOK, resp)
	}
}

// bindProfileRequest parses and validates the shared request payload.
func bindProfileRequest(c *gin.Context) (*models.AnalyzeRequest, bool) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: err.Error(),
			},
		})
		return nil, false
	}
	if verr := req.ValidateProfileURL(); verr != nil {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Error:   verr.ToDetail(),
		})
		return nil, false
	}
	return &req, true
}

// respondError maps a CaptureError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	captureErr, ok := err.(*models.CaptureError)
	if !ok {
		captureErr = models.NewCaptureError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(captureErr), models.AnalyzeResponse{
		Success: false,
		Error:   captureErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CaptureError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeChallengeRequired:
		return http.StatusConflict // 409
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeLaunch, models.ErrCodeCapture:
		return http.StatusBadGateway // 502
	case models.ErrCodeInitFailed, models.ErrCodeConfiguration:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeNavigationTimeout, models.ErrCodeAnalysisTimeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}
