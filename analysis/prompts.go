package analysis

import (
	"encoding/json"
	"fmt"
)

// coordinatePrompt asks the vision model to locate the first letter of each
// section title, as percentages from the top-left corner.
const coordinatePrompt = `You are a computer vision expert specializing in precise text localization in LinkedIn profiles. Identify the EXACT pixel coordinates of the FIRST LETTER of each section title/header.

INSTRUCTIONS:
1. Look for section titles formatted as headers (bold, larger font, standalone text).
2. For each title found, locate the precise position of the FIRST CHARACTER, ignoring icons, bullets, or spacing before the text.
3. Provide coordinates as percentages (0-100) from the top-left corner: x = horizontal distance from the left edge, y = vertical distance from the top edge.
4. Measure to the leftmost pixel of the first letter.

SECTION TITLES TO DETECT: About, Experience, Education, Skills, Recommendations, Accomplishments, Certifications, Languages, Volunteer experience, Projects, Publications, Honors & awards, Test scores, Courses, Organizations, Patents, Licenses & certifications, Contact info.

RESPONSE FORMAT (STRICT JSON, no markdown):
{
  "detected_sections": [
    {
      "section_name": "Experience",
      "first_letter": "E",
      "title_coordinates": [x_percentage, y_percentage],
      "confidence": 95,
      "font_size_estimate": "large",
      "text_style": "bold",
      "notes": "Clear header, bold formatting"
    }
  ],
  "detection_metadata": {
    "total_sections_found": 5,
    "layout_type": "desktop",
    "text_clarity": "high"
  }
}

Only include sections where the first letter is clearly visible. Confidence should be 80+ for precise coordinates, 60-79 for estimates.`

// analysisPromptTemplate is the scored profile review. The coordinate
// context block is filled in when the detection pass succeeded.
const analysisPromptTemplate = `You are an expert LinkedIn profile optimization consultant with 15+ years of experience. Analyze this LinkedIn profile screenshot with extreme precision and provide comprehensive feedback.

%s

ANALYSIS REQUIREMENTS:
1. Examine EVERY visible element in the profile screenshot.
2. Apply STRICT professional standards - be harsh but constructive.
3. Focus on conversion optimization and professional branding impact.

SECTIONS TO ANALYZE (if visible): profile photo, background banner, headline, About, experience entries, education, skills, recommendations, contact information, activity, certifications, languages, volunteer experience.

POSITIONING: for section titles, use the coordinates provided above when available; otherwise estimate based on the typical LinkedIn layout.

SCORING (be strict and realistic):
- green (85-100): exceptional, industry-leading
- yellow (60-84): adequate but needs significant improvement
- red (0-59): poor quality, severely limiting opportunities

RESPONSE FORMAT (STRICT JSON, no markdown):
{
  "overall_score": 72,
  "overall_feedback": "Detailed assessment with specific improvement priorities",
  "critical_issues": ["3-5 most urgent problems"],
  "competitive_advantages": ["2-3 strongest elements"],
  "sections": [
    {
      "name": "Profile Photo",
      "coordinates": [x_percentage, y_percentage],
      "criticality": "yellow",
      "score": 65,
      "comment": "Specific, actionable feedback",
      "priority": 8,
      "improvements": ["Action item 1", "Action item 2"],
      "industry_benchmark": "Comparison to the top 10%% of professionals",
      "impact_on_opportunities": "Effect on job/business prospects",
      "detailed_analysis": "Extended analysis with examples"
    }
  ],
  "missing_elements": ["Critical sections not present"],
  "next_steps": ["Prioritized action plan"]
}

Analyze this profile as if the person is competing for their dream role against 200+ qualified candidates.`

// buildAnalysisPrompt injects the detected coordinates, when available, into
// the review prompt.
func buildAnalysisPrompt(coords *SectionCoordinates) string {
	context := ""
	if coords != nil && len(coords.DetectedSections) > 0 {
		if encoded, err := json.MarshalIndent(coords.DetectedSections, "", "  "); err == nil {
			context = fmt.Sprintf("DETECTED SECTION COORDINATES (for reference):\n%s\n\nUse these coordinates to provide accurate positions in your analysis.", encoded)
		}
	}
	return fmt.Sprintf(analysisPromptTemplate, context)
}
