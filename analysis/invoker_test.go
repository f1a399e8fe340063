package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/proflens/proflens/models"
)

func TestScriptInvoker_SkipsWithoutAPIKey(t *testing.T) {
	// The script path is deliberately bogus: with no API key the invoker
	// must report a skipped result before ever touching the child process.
	inv := NewScriptInvoker("python3", "/nonexistent/analyzer.py", "", t.TempDir(), time.Minute)

	result, err := inv.Analyze(context.Background(), "screenshots/profile.png")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.Skipped {
		t.Error("result should be marked skipped")
	}
	if result.DataPath != "" || result.ReportPath != "" {
		t.Error("skipped result must not claim output files")
	}
}

func TestScriptInvoker_SpawnFailure(t *testing.T) {
	inv := NewScriptInvoker("definitely-not-an-interpreter-7f3a", "analyzer.py", "key", t.TempDir(), time.Minute)

	_, err := inv.Analyze(context.Background(), "screenshots/profile.png")
	if err == nil {
		t.Fatal("expected spawn failure")
	}
	var ce *models.CaptureError
	if !errors.As(err, &ce) || ce.Code != models.ErrCodeAnalysis {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeAnalysis)
	}
}

func TestCollectOutputs_WellKnownFilesWin(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, DataFileName)
	reportPath := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(dataPath, []byte(`{"overall_score": 61}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(reportPath, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	inv := NewScriptInvoker("python3", "analyzer.py", "key", dir, time.Minute)
	result := &Result{}
	inv.collectOutputs(result, "wrote /somewhere/else/other.json and /somewhere/else/other.html")

	if result.DataPath != dataPath {
		t.Errorf("DataPath = %q, want well-known %q", result.DataPath, dataPath)
	}
	if result.ReportPath != reportPath {
		t.Errorf("ReportPath = %q, want well-known %q", result.ReportPath, reportPath)
	}
	if string(result.Data) != `{"overall_score": 61}` {
		t.Errorf("Data = %s", result.Data)
	}
}

func TestCollectOutputs_StdoutHintFallback(t *testing.T) {
	dir := t.TempDir()
	hinted := filepath.Join(dir, "custom_results.json")
	if err := os.WriteFile(hinted, []byte(`{"overall_score": 48}`), 0o644); err != nil {
		t.Fatal(err)
	}

	inv := NewScriptInvoker("python3", "analyzer.py", "key", dir, time.Minute)
	result := &Result{}
	inv.collectOutputs(result, "results written to "+hinted)

	if result.DataPath != hinted {
		t.Errorf("DataPath = %q, want hinted %q", result.DataPath, hinted)
	}
	if result.ReportPath != "" {
		t.Errorf("ReportPath = %q, want empty", result.ReportPath)
	}
}

func TestCollectOutputs_ExitZeroButNoFiles(t *testing.T) {
	inv := NewScriptInvoker("python3", "analyzer.py", "key", t.TempDir(), time.Minute)
	result := &Result{}
	inv.collectOutputs(result, "claims /tmp/ghost_results.json was written")

	if result.DataPath != "" || result.ReportPath != "" {
		t.Errorf("paths must stay empty when no file exists: data=%q report=%q",
			result.DataPath, result.ReportPath)
	}
}

func TestCollectOutputs_InvalidJSONDropsData(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, DataFileName)
	if err := os.WriteFile(dataPath, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	inv := NewScriptInvoker("python3", "analyzer.py", "key", dir, time.Minute)
	result := &Result{}
	inv.collectOutputs(result, "")

	if result.Data != nil {
		t.Errorf("Data = %s, want nil for invalid JSON", result.Data)
	}
}

func TestScanPathHints(t *testing.T) {
	stdout := "wrote output/analysis_results.json then output/linkedin_analysis.html and extra/late.json"
	hints := scanPathHints(stdout)

	if hints[".json"] != "output/analysis_results.json" {
		t.Errorf(".json hint = %q, want first occurrence", hints[".json"])
	}
	if hints[".html"] != "output/linkedin_analysis.html" {
		t.Errorf(".html hint = %q", hints[".html"])
	}
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.json")
	if err := os.WriteFile(real, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := firstExisting("", filepath.Join(dir, "missing.json"), real); got != real {
		t.Errorf("firstExisting = %q, want %q", got, real)
	}
	if got := firstExisting("", filepath.Join(dir, "missing.json")); got != "" {
		t.Errorf("firstExisting = %q, want empty", got)
	}
	// A directory is not a regular file and must not match.
	if got := firstExisting(dir); got != "" {
		t.Errorf("firstExisting matched a directory: %q", got)
	}
}

func TestTail(t *testing.T) {
	if got := tail("  short  ", 100); got != "short" {
		t.Errorf("tail = %q", got)
	}
	if got := tail("abcdefgh", 3); got != "fgh" {
		t.Errorf("tail = %q", got)
	}
}
