package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/proflens/proflens/models"
)

// ScriptInvoker runs the external analysis script as a child process.
//
// The contract with the child is explicit: it receives the image path, the
// output directory, and the API key as named arguments (never via implicit
// environment state), exits 0 on success, and may write the two well-known
// output files into the output directory. Stdout path hints are honoured
// only as a deprecated fallback, and file existence is always verified
// independently of the exit code.
type ScriptInvoker struct {
	interpreter string
	scriptPath  string
	apiKey      string
	outputDir   string
	timeout     time.Duration
}

// NewScriptInvoker creates a ScriptInvoker. apiKey may be empty; Analyze
// then reports a skipped result without ever spawning the child.
func NewScriptInvoker(interpreter, scriptPath, apiKey, outputDir string, timeout time.Duration) *ScriptInvoker {
	return &ScriptInvoker{
		interpreter: interpreter,
		scriptPath:  scriptPath,
		apiKey:      apiKey,
		outputDir:   outputDir,
		timeout:     timeout,
	}
}

func (i *ScriptInvoker) Name() string { return "script" }

// Analyze spawns the script with a wall-clock timeout and collects its
// output contract.
func (i *ScriptInvoker) Analyze(ctx context.Context, artifactPath string) (*Result, error) {
	if i.apiKey == "" {
		slog.Info("analysis skipped: no API key configured")
		return SkippedResult(), nil
	}

	if err := os.MkdirAll(i.outputDir, 0o755); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"failed to create analysis output directory",
			err,
		)
	}

	runCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, i.interpreter, i.scriptPath,
		"--image", artifactPath,
		"--output-dir", i.outputDir,
		"--api-key", i.apiKey,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			slog.Error("analysis script timed out",
				"script", i.scriptPath,
				"elapsed", elapsed.Round(time.Millisecond).String(),
			)
			return nil, models.NewCaptureError(
				models.ErrCodeAnalysisTimeout,
				"analysis script exceeded its deadline and was terminated",
				err,
			)
		}
		slog.Error("analysis script failed",
			"script", i.scriptPath,
			"stderr", tail(stderr.String(), 2048),
			"error", err,
		)
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"analysis script exited with an error: "+tail(stderr.String(), 512),
			err,
		)
	}

	slog.Info("analysis script finished",
		"script", i.scriptPath,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)

	result := &Result{RawOutput: stdout.String()}
	i.collectOutputs(result, stdout.String())
	return result, nil
}

// collectOutputs resolves the two optional output files. The well-known
// paths in the output directory win; stdout hints are consulted only when a
// well-known file is missing, and every candidate is stat-checked — an exit
// code never implies a file exists.
func (i *ScriptInvoker) collectOutputs(result *Result, stdout string) {
	dataPath := filepath.Join(i.outputDir, DataFileName)
	reportPath := filepath.Join(i.outputDir, ReportFileName)

	hints := scanPathHints(stdout)

	result.DataPath = firstExisting(dataPath, hints[".json"])
	result.ReportPath = firstExisting(reportPath, hints[".html"])

	if result.DataPath == "" {
		slog.Warn("analysis script exited 0 but wrote no results JSON")
	}
	if result.DataPath != "" {
		data, err := os.ReadFile(result.DataPath)
		if err != nil {
			slog.Warn("failed to read analysis results file", "path", result.DataPath, "error", err)
			result.DataPath = ""
		} else if json.Valid(data) {
			result.Data = json.RawMessage(data)
		} else {
			slog.Warn("analysis results file is not valid JSON", "path", result.DataPath)
		}
	}
}

// pathHintRe matches file paths the legacy script prints to stdout.
var pathHintRe = regexp.MustCompile(`[\w./\\-]+\.(?:json|html)`)

// scanPathHints extracts candidate output paths from stdout, keyed by
// extension. Deprecated fallback: only used when the well-known files are
// absent.
func scanPathHints(stdout string) map[string]string {
	hints := make(map[string]string)
	for _, m := range pathHintRe.FindAllString(stdout, -1) {
		ext := strings.ToLower(filepath.Ext(m))
		if _, seen := hints[ext]; !seen {
			hints[ext] = m
		}
	}
	return hints
}

// firstExisting returns the first candidate that exists as a regular file.
func firstExisting(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c
		}
	}
	return ""
}

// tail returns at most n trailing bytes of s.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
