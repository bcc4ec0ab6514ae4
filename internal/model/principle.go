package model

// Principle identifies one of the four weighted care-quality dimensions
type Principle string

const (
	PrincipleRitualOverStimulation   Principle = "ritual_over_stimulation"
	PrincipleEmotionOverAccuracy     Principle = "emotion_over_accuracy"
	PrinciplePresenceOverPerformance Principle = "presence_over_performance"
	PrincipleShortSteadyRepeatable   Principle = "short_steady_repeatable"
)

// PrincipleInfo describes a care principle and its scoring weight
type PrincipleInfo struct {
	Key         Principle `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"` // weights across all principles sum to 1.0
}

// Principles returns the care principles in canonical order.
// The weights are fixed configuration, not derived.
func Principles() []PrincipleInfo {
	return []PrincipleInfo{
		{
			Key:         PrincipleRitualOverStimulation,
			Title:       "Ritual Over Stimulation",
			Description: "Novelty creates anxiety. Familiarity creates safety.",
			Weight:      0.25,
		},
		{
			Key:         PrincipleEmotionOverAccuracy,
			Title:       "Emotion Over Accuracy",
			Description: "Respond to feelings, not facts. Correctness is optional. Comfort is not.",
			Weight:      0.30,
		},
		{
			Key:         PrinciplePresenceOverPerformance,
			Title:       "Presence Over Performance",
			Description: "No one is asked to remember, improve, or succeed.",
			Weight:      0.25,
		},
		{
			Key:         PrincipleShortSteadyRepeatable,
			Title:       "Short, Steady, Repeatable",
			Description: "Better to return tomorrow than overwhelm today.",
			Weight:      0.20,
		},
	}
}

// PrincipleScore is the result of scoring one principle over a transcript
type PrincipleScore struct {
	Score    float64  `json:"score"`    // always clamped into [0,1]
	Evidence []string `json:"evidence"` // audit trail, one line per check
}
