package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Renderer formats training reports for output
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. The footer carries the care ethos and
// can be suppressed for machine-consumed output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON returns the report as indented JSON
func (r *Renderer) RenderJSON(report *model.TrainingReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// RenderSummary returns a terse one-screen summary for terminal use
func (r *Renderer) RenderSummary(report *model.TrainingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grade: %s (%.2f)\n", report.Grade, report.OverallScore)
	fmt.Fprintf(&b, "Stage: %s | Turns: %d\n", report.DementiaStage, report.TurnCount)

	for _, p := range model.Principles() {
		fmt.Fprintf(&b, "  %-28s %.2f\n", p.Title, report.PrincipleScores[p.Key].Score)
	}

	fmt.Fprintf(&b, "Violations: %d | Phases detected: %d/%d\n",
		len(report.Violations), report.PhaseAnalysis.PhaseCount, len(model.PhaseNames()))

	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&b, "Top recommendation: %s\n", report.Recommendations[0].Title)
	}

	return b.String()
}

// RenderMarkdown returns a full human-readable report
func (r *Renderer) RenderMarkdown(report *model.TrainingReport) string {
	var b strings.Builder

	b.WriteString("# Caregiver Training Report\n\n")
	if report.CaregiverName != "" || report.PatientName != "" {
		fmt.Fprintf(&b, "**Caregiver:** %s  \n**Patient:** %s  \n",
			orDash(report.CaregiverName), orDash(report.PatientName))
	}
	fmt.Fprintf(&b, "**Dementia stage:** %s  \n", report.DementiaStage)
	if !report.AnalyzedAt.IsZero() {
		fmt.Fprintf(&b, "**Analyzed:** %s  \n", report.AnalyzedAt.Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&b, "\n## Overall: %s (%.2f)\n\n", report.Grade, report.OverallScore)

	b.WriteString("## Principle Scores\n\n")
	for _, p := range model.Principles() {
		ps := report.PrincipleScores[p.Key]
		fmt.Fprintf(&b, "### %s — %.2f\n\n", p.Title, ps.Score)
		fmt.Fprintf(&b, "_%s_\n\n", p.Description)
		for _, e := range ps.Evidence {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	if len(report.Strengths) > 0 {
		b.WriteString("## Strengths\n\n")
		for _, s := range report.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(report.Violations) > 0 {
		b.WriteString("## Things to Avoid\n\n")
		for _, v := range report.Violations {
			fmt.Fprintf(&b, "- **[%s]** Turn %d: \"%s\"\n", strings.ToUpper(string(v.Severity)), v.TurnNumber, v.Text)
			fmt.Fprintf(&b, "  - Issue: %s\n", v.Issue)
			fmt.Fprintf(&b, "  - Try instead: %s\n", v.Correction)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Visit Structure\n\n")
	if report.PhaseAnalysis.FollowsStructure {
		fmt.Fprintf(&b, "Followed the ideal structure (%d/%d phases detected).\n\n",
			report.PhaseAnalysis.PhaseCount, len(model.PhaseNames()))
	} else {
		fmt.Fprintf(&b, "Only %d/%d phases detected.\n\n",
			report.PhaseAnalysis.PhaseCount, len(model.PhaseNames()))
	}
	if len(report.PhaseAnalysis.DetectedPhases) > 0 {
		fmt.Fprintf(&b, "Detected: %s\n\n", strings.Join(report.PhaseAnalysis.DetectedPhases, ", "))
	}
	if len(report.PhaseAnalysis.MissingPhases) > 0 {
		fmt.Fprintf(&b, "Missing: %s\n\n", strings.Join(report.PhaseAnalysis.MissingPhases, ", "))
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range report.Recommendations {
			fmt.Fprintf(&b, "### %d. %s (%s)\n\n", i+1, rec.Title, rec.Priority)
			fmt.Fprintf(&b, "%s\n\n", rec.Description)
			fmt.Fprintf(&b, "**Do this:** %s\n\n", rec.Action)
			if rec.Example != "" {
				fmt.Fprintf(&b, "**Example:** %s\n\n", rec.Example)
			}
		}
	}

	if report.Coaching != nil && report.Coaching.Enabled {
		b.WriteString("## Coaching Note\n\n")
		fmt.Fprintf(&b, "_Generated by %s (%s); scores above are rule-based and unaffected._\n\n",
			report.Coaching.Provider, report.Coaching.Model)
		b.WriteString(report.Coaching.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n> %s\n", model.Ethos)
	}

	return b.String()
}

// RenderPhilosophy returns the ideal-session script as markdown
func (r *Renderer) RenderPhilosophy() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# The Ideal %d-Minute Visit\n\n> %s\n\n", model.IdealSessionMinutes, model.Ethos)

	for _, p := range model.IdealSession() {
		fmt.Fprintf(&b, "## %s (%s)\n\n**Purpose:** %s\n\n", p.Name, p.Duration, p.Purpose)
		fmt.Fprintf(&b, "> %s\n\n", p.Example)
		for _, kp := range p.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", kp)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
