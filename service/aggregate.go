package service

import (
	"path/filepath"

	"github.com/proflens/proflens/analysis"
	"github.com/proflens/proflens/models"
)

// aggregate merges a successful capture with the analysis outcome into the
// uniform response shape.
//
// Rules:
//   - analysis skipped (no credential) → success, analysis fields null, warning
//   - analysis failed                  → success, analysis fields null, warning
//   - analysis succeeded               → all fields populated
//
// Capture failures never reach this function; they abort the request at the
// workflow layer.
func aggregate(artifact *models.CaptureArtifact, result *analysis.Result, analysisErr error, timing models.TimingInfo) *models.AnalyzeResponse {
	resp := &models.AnalyzeResponse{
		Success:        true,
		ScreenshotPath: artifact.FilePath,
		ScreenshotURL:  "/screenshot/" + filepath.Base(artifact.FilePath),
		Timing:         timing,
	}

	switch {
	case analysisErr != nil:
		resp.Warning = "analysis failed, screenshot is still available: " + captureErrMessage(analysisErr)
	case result == nil || result.Skipped:
		resp.Warning = "analysis skipped: GEMINI_API_KEY is not configured"
	default:
		if result.ReportPath != "" {
			resp.ReportURL = "/report/" + filepath.Base(result.ReportPath)
		}
		if result.DataPath != "" {
			resp.AnalysisDataURL = "/analysis/" + filepath.Base(result.DataPath)
			resp.AnalysisData = result.Data
		}
		if result.ReportPath == "" && result.DataPath == "" {
			resp.Warning = "analysis completed but produced no output files"
		}
	}

	return resp
}

// captureErrMessage extracts the API-safe message from an analysis error,
// keeping wrapped process details internal.
func captureErrMessage(err error) string {
	if ce, ok := err.(*models.CaptureError); ok {
		return ce.Message
	}
	return err.Error()
}
