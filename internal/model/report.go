package model

import "time"

// ViolationType tags a specifically forbidden conversational pattern
type ViolationType string

const (
	ViolationMemoryTesting    ViolationType = "memory_testing"
	ViolationCorrection       ViolationType = "correction"
	ViolationTooManyChoices   ViolationType = "too_many_choices"
	ViolationTooManyQuestions ViolationType = "too_many_questions"
)

// ViolationSeverity indicates how harmful a violation is
type ViolationSeverity string

const (
	ViolationHigh   ViolationSeverity = "high"
	ViolationMedium ViolationSeverity = "medium"
)

// Violation is a detected instance of a forbidden pattern in a caregiver turn
type Violation struct {
	Severity   ViolationSeverity `json:"severity"`
	Type       ViolationType     `json:"type"`
	TurnNumber int               `json:"turn_number"` // 1-based index into caregiver turns
	Text       string            `json:"text"`        // excerpt, at most 100 characters
	Issue      string            `json:"issue"`       // why it's harmful
	Correction string            `json:"correction"`  // suggested alternative
}

// RecommendationPriority orders recommendations for the caregiver
type RecommendationPriority string

const (
	PriorityImmediate RecommendationPriority = "immediate"
	PriorityHigh      RecommendationPriority = "high"
	PriorityMedium    RecommendationPriority = "medium"
)

// Recommendation is an actionable coaching item derived from the analysis
type Recommendation struct {
	Priority    RecommendationPriority `json:"priority"`
	Category    string                 `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Action      string                 `json:"action"`
	Example     string                 `json:"example"`
}

// PhaseAnalysis reports which ideal-session phases appeared in the visit
type PhaseAnalysis struct {
	FollowsStructure bool     `json:"follows_structure"` // true iff >= 4 of 6 phases detected
	DetectedPhases   []string `json:"detected_phases"`   // canonical phase order
	MissingPhases    []string `json:"missing_phases"`
	PhaseCount       int      `json:"phase_count"`
}

// TrainingReport is the complete analysis of one caregiver training
// conversation. It is built once per analysis call and never mutated.
type TrainingReport struct {
	OverallScore    float64                      `json:"overall_score"` // weighted sum, rounded to 2 decimals
	Grade           string                       `json:"grade"`         // A-F via fixed thresholds
	PrincipleScores map[Principle]PrincipleScore `json:"principle_scores"`
	Violations      []Violation                  `json:"violations"`
	Strengths       []string                     `json:"strengths"`
	Recommendations []Recommendation             `json:"recommendations"`
	PhaseAnalysis   PhaseAnalysis                `json:"phase_analysis"`

	TurnCount          int           `json:"turn_count"`
	ConversationLength int           `json:"conversation_length"` // characters of raw transcript
	DementiaStage      TrainingStage `json:"dementia_stage"`

	CaregiverName string    `json:"caregiver_name,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	AnalyzedAt    time.Time `json:"analyzed_at,omitempty"`

	Coaching *CoachingSummary `json:"coaching,omitempty"` // optional LLM summary, never affects scores
}

// GradeFor converts an overall score to a letter grade using fixed thresholds
func GradeFor(score float64) string {
	switch {
	case score >= 0.90:
		return "A"
	case score >= 0.80:
		return "B"
	case score >= 0.70:
		return "C"
	case score >= 0.60:
		return "D"
	default:
		return "F"
	}
}

// CoachingSummary contains an optional LLM-generated coaching note.
// CRITICAL: this never affects scoring and is clearly separated.
type CoachingSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
