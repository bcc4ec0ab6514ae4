// Package analyze orchestrates the full training-report pipeline:
// transcript parsing, principle scoring, violation detection, phase
// analysis, strengths, and recommendations.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/ehiller1/dementia/internal/llm"
	"github.com/ehiller1/dementia/internal/model"
	"github.com/ehiller1/dementia/internal/phase"
	"github.com/ehiller1/dementia/internal/recommend"
	"github.com/ehiller1/dementia/internal/score"
	"github.com/ehiller1/dementia/internal/transcript"
	"github.com/ehiller1/dementia/internal/violation"
)

// Analyzer runs the complete rule-based analysis over one conversation
type Analyzer struct {
	scorer      *score.Scorer
	detector    *violation.Detector
	phases      *phase.Analyzer
	recommender *recommend.Generator
	coach       *llm.Coach
}

// Request describes one conversation to analyze
type Request struct {
	Transcript    string
	CaregiverName string
	PatientName   string
	Stage         model.TrainingStage
}

// NewAnalyzer creates an analyzer from configuration. The optional
// coaching provider is wired here; everything else is deterministic.
func NewAnalyzer(cfg *model.Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	coach, err := llm.NewCoach(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure coaching provider: %w", err)
	}

	return &Analyzer{
		scorer:      score.NewScorer(),
		detector:    violation.NewDetector(),
		phases:      phase.NewAnalyzer(),
		recommender: recommend.NewGenerator(),
		coach:       coach,
	}, nil
}

// Analyze produces a training report for one conversation. It is pure:
// the same request always yields the same report, and no timestamp is
// set. HTML input is converted to plain text before parsing.
func (a *Analyzer) Analyze(req Request) (*model.TrainingReport, error) {
	text := req.Transcript
	if transcript.LooksLikeHTML(text) {
		extracted, err := transcript.ExtractText(text)
		if err != nil {
			return nil, fmt.Errorf("extract transcript text: %w", err)
		}
		text = extracted
	}

	stage := req.Stage
	if stage == "" {
		stage = model.StageModerate
	}

	parser := transcript.NewParser(req.CaregiverName, req.PatientName)
	turns := parser.Parse(text)

	scores := a.scorer.Score(turns)
	violations := a.detector.Detect(turns)
	phaseAnalysis := a.phases.Analyze(turns)
	strengths := recommend.Strengths(turns)
	recommendations := a.recommender.Generate(scores, violations, stage)

	overall := score.Overall(scores)

	return &model.TrainingReport{
		OverallScore:       overall,
		Grade:              model.GradeFor(overall),
		PrincipleScores:    scores,
		Violations:         violations,
		Strengths:          strengths,
		Recommendations:    recommendations,
		PhaseAnalysis:      phaseAnalysis,
		TurnCount:          len(turns),
		ConversationLength: len(text),
		DementiaStage:      stage,
		CaregiverName:      req.CaregiverName,
		PatientName:        req.PatientName,
	}, nil
}

// AnalyzeSession runs Analyze, stamps the report, and attaches the
// optional coaching note. A coaching failure never fails the session;
// the rule-based report is complete without it.
func (a *Analyzer) AnalyzeSession(ctx context.Context, req Request) (*model.TrainingReport, error) {
	report, err := a.Analyze(req)
	if err != nil {
		return nil, err
	}
	report.AnalyzedAt = time.Now().UTC()

	if a.coach.IsEnabled() {
		if summary, err := a.coach.Generate(ctx, *report); err == nil {
			report.Coaching = summary
		}
	}

	return report, nil
}

// CoachingEnabled reports whether an LLM coaching provider is configured
func (a *Analyzer) CoachingEnabled() bool {
	return a.coach.IsEnabled()
}
