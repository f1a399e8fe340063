package analysis

import "sort"

// SectionCoordinates is the result of the coordinate-detection pass.
type SectionCoordinates struct {
	DetectedSections  []DetectedSection `json:"detected_sections"`
	DetectionMetadata map[string]any    `json:"detection_metadata,omitempty"`
}

// DetectedSection locates the first letter of one section title, with
// coordinates as percentages of the image dimensions.
type DetectedSection struct {
	SectionName         string     `json:"section_name"`
	FirstLetter         string     `json:"first_letter,omitempty"`
	TitleCoordinates    [2]float64 `json:"title_coordinates"`
	Confidence          float64    `json:"confidence"`
	FontSizeEstimate    string     `json:"font_size_estimate,omitempty"`
	TextStyle           string     `json:"text_style,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CoordinatePrecision string     `json:"coordinate_precision,omitempty"`
}

// ProfileAnalysis is the scored review of the whole profile.
type ProfileAnalysis struct {
	OverallScore          int             `json:"overall_score"`
	OverallFeedback       string          `json:"overall_feedback"`
	CriticalIssues        []string        `json:"critical_issues,omitempty"`
	CompetitiveAdvantages []string        `json:"competitive_advantages,omitempty"`
	Sections              []SectionReview `json:"sections"`
	MissingElements       []string        `json:"missing_elements,omitempty"`
	NextSteps             []string        `json:"next_steps,omitempty"`
}

// SectionReview scores one visible profile section.
type SectionReview struct {
	Name                  string    `json:"name"`
	Coordinates           []float64 `json:"coordinates,omitempty"`
	Criticality           string    `json:"criticality"` // "red", "yellow", "green"
	Score                 int       `json:"score"`
	Comment               string    `json:"comment"`
	Priority              int       `json:"priority"`
	Improvements          []string  `json:"improvements,omitempty"`
	IndustryBenchmark     string    `json:"industry_benchmark,omitempty"`
	ImpactOnOpportunities string    `json:"impact_on_opportunities,omitempty"`
	DetailedAnalysis      string    `json:"detailed_analysis,omitempty"`
}

// normalize orders sections top to bottom and constrains coordinates.
// The x nudge compensates for the model measuring from the glyph edge
// rather than the text box.
func (c *SectionCoordinates) normalize() {
	sort.SliceStable(c.DetectedSections, func(i, j int) bool {
		return c.DetectedSections[i].TitleCoordinates[1] < c.DetectedSections[j].TitleCoordinates[1]
	})
	for i := range c.DetectedSections {
		s := &c.DetectedSections[i]
		s.TitleCoordinates[0] = clamp(s.TitleCoordinates[0]-0.5, 0, 100)
		s.TitleCoordinates[1] = clamp(s.TitleCoordinates[1], 0, 100)
		if s.Confidence >= 85 {
			s.CoordinatePrecision = "high"
		} else {
			s.CoordinatePrecision = "medium"
		}
	}
}

// normalize constrains section marker positions so info buttons stay on the
// image.
func (a *ProfileAnalysis) normalize() {
	for i := range a.Sections {
		s := &a.Sections[i]
		if len(s.Coordinates) >= 2 {
			// Offset right of the title so the marker doesn't cover the text.
			s.Coordinates[0] = clamp(s.Coordinates[0]+3.0, 0, 95)
			s.Coordinates[1] = clamp(s.Coordinates[1], 0, 95)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
