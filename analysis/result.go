package analysis

import (
	"context"
	"encoding/json"
)

// Well-known output filenames the analysis step writes into its output
// directory. Their absence after a successful run is not an error; the
// backend may have partially degraded.
const (
	DataFileName        = "analysis_results.json"
	ReportFileName      = "linkedin_analysis.html"
	CoordinatesFileName = "detected_coordinates.json"
)

// Result is the outcome of one analysis run.
type Result struct {
	// Skipped is true when analysis was not attempted (no API key).
	Skipped bool

	// RawOutput is the backend's verbatim output (process stdout or model
	// text), kept for diagnostics.
	RawOutput string

	// DataPath points at the structured JSON results file, empty when the
	// file does not exist on disk.
	DataPath string

	// ReportPath points at the interactive HTML report, empty when the
	// file does not exist on disk.
	ReportPath string

	// Data is the parsed structured analysis, nil when DataPath is empty.
	Data json.RawMessage
}

// SkippedResult is returned when the analysis capability is not configured.
func SkippedResult() *Result {
	return &Result{Skipped: true}
}

// Analyzer scores a captured profile screenshot. Implementations: the
// external script invoker and the in-process Gemini analyzer.
type Analyzer interface {
	// Analyze runs the analysis for one artifact. Failures are typed
	// (ANALYSIS_FAILED / ANALYSIS_TIMEOUT) and never retried here.
	Analyze(ctx context.Context, artifactPath string) (*Result, error)

	// Name identifies the backend ("script" or "gemini") for status reporting.
	Name() string
}
