package analysis

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
)

// reportData is the template input for the interactive report.
type reportData struct {
	ImageData   string
	ScoreClass  string
	RedCount    int
	YellowCount int
	GreenCount  int
	Analysis    *ProfileAnalysis
}

// writeReport renders the interactive HTML report: the screenshot with a
// colored info button at each reviewed section, scrollable tooltips, and
// summary cards. The image is embedded base64 so the report is a single
// self-contained file.
func writeReport(path string, image []byte, analysis *ProfileAnalysis) error {
	data := reportData{
		ImageData:  base64.StdEncoding.EncodeToString(image),
		ScoreClass: scoreClass(analysis.OverallScore),
		Analysis:   analysis,
	}
	for _, s := range analysis.Sections {
		switch s.Criticality {
		case "red":
			data.RedCount++
		case "green":
			data.GreenCount++
		default:
			data.YellowCount++
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func scoreClass(score int) string {
	switch {
	case score >= 85:
		return "score-excellent"
	case score >= 60:
		return "score-good"
	default:
		return "score-poor"
	}
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"x": func(c []float64) string {
		if len(c) >= 2 {
			return fmt.Sprintf("%.1f", c[0])
		}
		return "2.0"
	},
	"y": func(c []float64) string {
		if len(c) >= 2 {
			return fmt.Sprintf("%.1f", c[1])
		}
		return "2.0"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>LinkedIn Profile Analysis - Interactive Report</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; padding: 20px; }
.container { max-width: 1400px; margin: 0 auto; background: white; border-radius: 20px; box-shadow: 0 20px 60px rgba(0,0,0,0.1); overflow: hidden; }
.header { background: linear-gradient(135deg, #0077b5, #005885); color: white; padding: 30px; text-align: center; }
.score-display { font-size: 4em; font-weight: bold; margin: 20px 0; text-shadow: 2px 2px 4px rgba(0,0,0,0.3); }
.score-excellent { color: #00ff88; }
.score-good { color: #ffeb3b; }
.score-poor { color: #ff6b6b; }
.stats-row { display: flex; justify-content: space-around; margin: 20px 0; flex-wrap: wrap; }
.stat-item { text-align: center; padding: 10px; }
.stat-number { font-size: 2em; font-weight: bold; display: block; }
.stat-label { font-size: 0.9em; opacity: 0.9; }
.image-container { position: relative; width: 100%; margin: 0 auto; background: #f8f9fa; padding: 20px; }
.profile-image { width: 100%; height: auto; display: block; border-radius: 10px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); }
.info-button { position: absolute; width: 26px; height: 26px; border-radius: 50%; color: white; font-weight: bold; font-size: 14px; display: flex; align-items: center; justify-content: center; cursor: pointer; z-index: 10; transition: all 0.3s ease; box-shadow: 0 4px 15px rgba(0,0,0,0.2); border: 2px solid white; }
.info-button:hover { transform: scale(1.3); z-index: 15; }
.info-button.red { background: linear-gradient(135deg, #ff6b6b, #ee5a52); }
.info-button.yellow { background: linear-gradient(135deg, #ffd93d, #ffcd02); color: #333; }
.info-button.green { background: linear-gradient(135deg, #6bcf7f, #4caf50); }
.tooltip { position: absolute; background: rgba(0,0,0,0.95); color: white; border-radius: 15px; font-size: 14px; line-height: 1.5; width: 420px; max-height: 500px; z-index: 1000; box-shadow: 0 15px 50px rgba(0,0,0,0.4); opacity: 0; visibility: hidden; transition: all 0.3s ease; pointer-events: none; display: flex; flex-direction: column; }
.tooltip.show { opacity: 1; visibility: visible; pointer-events: auto; }
.tooltip-header { padding: 20px 20px 15px 20px; border-bottom: 1px solid rgba(255,255,255,0.2); flex-shrink: 0; }
.tooltip-title { font-weight: bold; font-size: 18px; color: #4fc3f7; margin-bottom: 10px; }
.tooltip-meta { display: flex; gap: 15px; flex-wrap: wrap; }
.tooltip-score, .tooltip-priority { background: rgba(255,255,255,0.1); padding: 5px 12px; border-radius: 15px; font-size: 12px; }
.tooltip-content { padding: 0 20px 20px 20px; overflow-y: auto; flex-grow: 1; }
.tooltip-section { margin-bottom: 20px; padding-bottom: 15px; border-bottom: 1px solid rgba(255,255,255,0.1); }
.tooltip-section:last-child { border-bottom: none; margin-bottom: 0; }
.tooltip-section h4 { color: #81c784; font-size: 14px; margin-bottom: 10px; }
.tooltip-section p, .tooltip-section li { color: #e8f5e8; margin-bottom: 8px; }
.tooltip-section ul { margin: 10px 0; padding-left: 20px; }
.summary-section { padding: 40px; background: #f8f9fa; }
.summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 30px; margin-top: 30px; }
.summary-card { background: white; padding: 25px; border-radius: 15px; box-shadow: 0 5px 20px rgba(0,0,0,0.1); border-left: 5px solid #0077b5; }
.summary-card h3 { color: #0077b5; margin-bottom: 15px; font-size: 1.2em; }
.summary-card ul { list-style: none; padding: 0; }
.summary-card li { margin-bottom: 12px; padding: 8px 0; border-bottom: 1px solid #eee; color: #666; }
.summary-card li:last-child { border-bottom: none; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>LinkedIn Profile Analysis</h1>
    <div class="score-display {{.ScoreClass}}">{{.Analysis.OverallScore}}/100</div>
    <p style="font-size: 1.1em; margin-top: 10px;">{{.Analysis.OverallFeedback}}</p>
    <div class="stats-row">
      <div class="stat-item"><span class="stat-number" style="color: #ff6b6b;">{{.RedCount}}</span><span class="stat-label">Critical Issues</span></div>
      <div class="stat-item"><span class="stat-number" style="color: #ffd93d;">{{.YellowCount}}</span><span class="stat-label">Needs Improvement</span></div>
      <div class="stat-item"><span class="stat-number" style="color: #6bcf7f;">{{.GreenCount}}</span><span class="stat-label">Excellent</span></div>
      <div class="stat-item"><span class="stat-number" style="color: #4fc3f7;">{{len .Analysis.Sections}}</span><span class="stat-label">Total Sections</span></div>
    </div>
  </div>
  <div class="image-container">
    <img src="data:image/png;base64,{{.ImageData}}" alt="LinkedIn Profile Screenshot" class="profile-image">
    {{range $i, $s := .Analysis.Sections}}
    <div class="info-button {{$s.Criticality}}" style="left: {{x $s.Coordinates}}%; top: {{y $s.Coordinates}}%;" data-tooltip-id="tooltip-{{$i}}">i</div>
    <div class="tooltip" id="tooltip-{{$i}}">
      <div class="tooltip-header">
        <div class="tooltip-title">{{$s.Name}}</div>
        <div class="tooltip-meta">
          <div class="tooltip-score">Score: {{$s.Score}}/100</div>
          <div class="tooltip-priority">Priority: {{$s.Priority}}/10</div>
        </div>
      </div>
      <div class="tooltip-content">
        <div class="tooltip-section">
          <h4>Overview</h4>
          <p>{{$s.Comment}}</p>
          {{if $s.DetailedAnalysis}}<p><strong>Detailed Analysis:</strong> {{$s.DetailedAnalysis}}</p>{{end}}
        </div>
        {{if $s.Improvements}}
        <div class="tooltip-section">
          <h4>Recommended Actions</h4>
          <ul>{{range $s.Improvements}}<li>{{.}}</li>{{end}}</ul>
        </div>
        {{end}}
        {{if $s.IndustryBenchmark}}
        <div class="tooltip-section"><h4>Industry Benchmark</h4><p>{{$s.IndustryBenchmark}}</p></div>
        {{end}}
        {{if $s.ImpactOnOpportunities}}
        <div class="tooltip-section"><h4>Career Impact</h4><p>{{$s.ImpactOnOpportunities}}</p></div>
        {{end}}
      </div>
    </div>
    {{end}}
  </div>
  <div class="summary-section">
    <h2 style="text-align: center; color: #0077b5; margin-bottom: 30px;">Analysis Summary</h2>
    <div class="summary-grid">
      {{if .Analysis.CriticalIssues}}
      <div class="summary-card" style="border-left-color: #ff6b6b;"><h3>Critical Issues</h3><ul>{{range .Analysis.CriticalIssues}}<li>{{.}}</li>{{end}}</ul></div>
      {{end}}
      {{if .Analysis.CompetitiveAdvantages}}
      <div class="summary-card" style="border-left-color: #6bcf7f;"><h3>Your Strengths</h3><ul>{{range .Analysis.CompetitiveAdvantages}}<li>{{.}}</li>{{end}}</ul></div>
      {{end}}
      {{if .Analysis.NextSteps}}
      <div class="summary-card" style="border-left-color: #4CAF50;"><h3>Action Plan</h3><ul>{{range .Analysis.NextSteps}}<li>{{.}}</li>{{end}}</ul></div>
      {{end}}
      {{if .Analysis.MissingElements}}
      <div class="summary-card" style="border-left-color: #ff9800;"><h3>Missing Elements</h3><ul>{{range .Analysis.MissingElements}}<li>{{.}}</li>{{end}}</ul></div>
      {{end}}
    </div>
  </div>
</div>
<script>
document.addEventListener('DOMContentLoaded', function() {
  const buttons = document.querySelectorAll('.info-button');
  const tooltips = document.querySelectorAll('.tooltip');
  buttons.forEach(button => {
    const tooltip = document.getElementById(button.getAttribute('data-tooltip-id'));
    button.addEventListener('click', function(e) {
      e.stopPropagation();
      tooltips.forEach(t => { if (t !== tooltip) t.classList.remove('show'); });
      if (tooltip.classList.contains('show')) {
        tooltip.classList.remove('show');
      } else {
        const rect = button.getBoundingClientRect();
        const containerRect = document.querySelector('.image-container').getBoundingClientRect();
        tooltip.style.left = (rect.left - containerRect.left + rect.width + 15) + 'px';
        tooltip.style.top = (rect.top - containerRect.top - 20) + 'px';
        tooltip.classList.add('show');
      }
    });
  });
  document.addEventListener('click', function(e) {
    if (!e.target.closest('.info-button') && !e.target.closest('.tooltip')) {
      tooltips.forEach(t => t.classList.remove('show'));
    }
  });
  tooltips.forEach(t => t.addEventListener('click', e => e.stopPropagation()));
});
</script>
</body>
</html>
`))
