package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/proflens/proflens/models"
	"google.golang.org/genai"
)

// GeminiAnalyzer scores a profile screenshot in-process via the Gemini
// vision API. It runs two passes: section-title coordinate detection, then
// the scored review. The coordinate pass is best-effort; its failure only
// degrades marker positions to estimates.
type GeminiAnalyzer struct {
	client    *genai.Client
	model     string
	outputDir string
	timeout   time.Duration
}

// NewGeminiAnalyzer creates a GeminiAnalyzer against the Gemini API backend.
func NewGeminiAnalyzer(ctx context.Context, apiKey, model, outputDir string, timeout time.Duration) (*GeminiAnalyzer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiAnalyzer{
		client:    client,
		model:     model,
		outputDir: outputDir,
		timeout:   timeout,
	}, nil
}

func (g *GeminiAnalyzer) Name() string { return "gemini" }

// Analyze runs the two-pass analysis and writes the coordinate JSON, the
// results JSON, and the interactive HTML report into the output directory.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, artifactPath string) (*Result, error) {
	image, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"failed to read screenshot for analysis",
			err,
		)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"failed to create analysis output directory",
			err,
		)
	}

	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// ── Pass 1: coordinate detection (best-effort) ────────────────────
	coords := g.detectCoordinates(runCtx, image)

	// ── Pass 2: scored review ─────────────────────────────────────────
	text, err := g.generateVision(runCtx, buildAnalysisPrompt(coords), image)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"model did not return parseable analysis JSON",
			err,
		)
	}

	var review ProfileAnalysis
	if err := json.Unmarshal(raw, &review); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeAnalysis,
			"analysis JSON did not match the expected shape",
			err,
		)
	}
	review.normalize()

	result := &Result{RawOutput: text}

	// Re-encode post-normalization so the file matches what the report shows.
	encoded, err := json.MarshalIndent(&review, "", "  ")
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeAnalysis, "failed to encode analysis results", err)
	}
	dataPath := filepath.Join(g.outputDir, DataFileName)
	if err := os.WriteFile(dataPath, encoded, 0o644); err != nil {
		return nil, models.NewCaptureError(models.ErrCodeAnalysis, "failed to write analysis results", err)
	}
	result.DataPath = dataPath
	result.Data = json.RawMessage(encoded)

	// ── Interactive report ────────────────────────────────────────────
	reportPath := filepath.Join(g.outputDir, ReportFileName)
	if err := writeReport(reportPath, image, &review); err != nil {
		// The JSON deliverable stands on its own; a report render failure
		// only drops the HTML artifact.
		slog.Warn("failed to render HTML report", "error", err)
	} else {
		result.ReportPath = reportPath
	}

	return result, nil
}

// detectCoordinates runs the coordinate pass and persists its output for
// debugging. Any failure returns nil: the review pass then estimates
// positions, exactly as the legacy script behaved.
func (g *GeminiAnalyzer) detectCoordinates(ctx context.Context, image []byte) *SectionCoordinates {
	text, err := g.generateVision(ctx, coordinatePrompt, image)
	if err != nil {
		slog.Warn("coordinate detection failed, proceeding with estimated positions", "error", err)
		return nil
	}

	raw, err := extractJSON(text)
	if err != nil {
		slog.Warn("coordinate detection returned no JSON, proceeding with estimated positions", "error", err)
		return nil
	}

	var coords SectionCoordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		slog.Warn("coordinate JSON did not match the expected shape", "error", err)
		return nil
	}
	coords.normalize()

	if encoded, err := json.MarshalIndent(&coords, "", "  "); err == nil {
		path := filepath.Join(g.outputDir, CoordinatesFileName)
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			slog.Debug("failed to persist detected coordinates", "error", err)
		}
	}

	slog.Info("section coordinates detected", "sections", len(coords.DetectedSections))
	return &coords
}

// generateVision sends one prompt plus the screenshot to the model and
// drains the textual parts of the response.
func (g *GeminiAnalyzer) generateVision(ctx context.Context, prompt string, image []byte) (string, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: image}},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", models.NewCaptureError(
				models.ErrCodeAnalysisTimeout,
				"analysis exceeded its deadline",
				err,
			)
		}
		return "", models.NewCaptureError(
			models.ErrCodeAnalysis,
			"gemini request failed",
			err,
		)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}

	out := strings.TrimSpace(builder.String())
	if out == "" {
		return "", models.NewCaptureError(
			models.ErrCodeAnalysis,
			"gemini returned an empty response",
			nil,
		)
	}
	return out, nil
}
