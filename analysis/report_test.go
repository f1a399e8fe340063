package analysis

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReport(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}
	a := &ProfileAnalysis{
		OverallScore:    72,
		OverallFeedback: "Solid foundation with room to grow.",
		CriticalIssues:  []string{"Headline is generic"},
		Sections: []SectionReview{
			{Name: "Headline", Coordinates: []float64{23, 10}, Criticality: "red", Score: 40, Comment: "Too vague", Priority: 9},
			{Name: "About", Coordinates: []float64{23, 30}, Criticality: "green", Score: 88, Comment: "Strong narrative", Priority: 3},
			{Name: "Skills", Criticality: "yellow", Score: 65, Comment: "Missing endorsements", Priority: 5},
		},
		NextSteps: []string{"Rewrite the headline around outcomes"},
	}

	path := filepath.Join(t.TempDir(), ReportFileName)
	if err := writeReport(path, image, a); err != nil {
		t.Fatalf("writeReport: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(raw)

	if !strings.Contains(html, "72/100") {
		t.Error("report should show the overall score")
	}
	if !strings.Contains(html, base64.StdEncoding.EncodeToString(image)) {
		t.Error("report should embed the screenshot base64")
	}
	for _, name := range []string{"Headline", "About", "Skills"} {
		if !strings.Contains(html, name) {
			t.Errorf("report missing section %q", name)
		}
	}
	// One marker per section, positioned by its coordinates; sections
	// without coordinates fall back to the default corner position.
	if !strings.Contains(html, "left: 23.0%") {
		t.Error("report should position markers from coordinates")
	}
	if !strings.Contains(html, "left: 2.0%") {
		t.Error("coordinate-less sections should use the fallback position")
	}
	if !strings.Contains(html, "Rewrite the headline around outcomes") {
		t.Error("report should list next steps")
	}
}

func TestScoreClass(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{92, "score-excellent"},
		{85, "score-excellent"},
		{72, "score-good"},
		{60, "score-good"},
		{59, "score-poor"},
		{0, "score-poor"},
	}
	for _, tt := range tests {
		if got := scoreClass(tt.score); got != tt.want {
			t.Errorf("scoreClass(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
