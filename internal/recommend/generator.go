package recommend

import (
	"github.com/ehiller1/dementia/internal/model"
	"github.com/ehiller1/dementia/internal/violation"
)

// lowScoreThreshold is the principle score below which the principle's
// canned remediation is recommended
const lowScoreThreshold = 0.6

// Generator combines scorer output, violations, and dementia stage into
// a prioritized list of recommendations
type Generator struct{}

// NewGenerator creates a new recommendation generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces recommendations in priority order:
// a critical item first if any high-severity violation exists, then one
// remediation per low-scoring principle, then exactly one stage-specific
// item. A generic structural item is appended only when neither
// violations nor low scores produced anything.
func (g *Generator) Generate(
	scores map[model.Principle]model.PrincipleScore,
	violations []model.Violation,
	stage model.TrainingStage,
) []model.Recommendation {
	var recs []model.Recommendation

	for _, p := range model.Principles() {
		if scores[p.Key].Score < lowScoreThreshold {
			recs = append(recs, principleRemediation(p.Key))
		}
	}

	if violation.HasHighSeverity(violations) {
		recs = append([]model.Recommendation{{
			Priority:    model.PriorityImmediate,
			Category:    "critical",
			Title:       "Stop Testing Memory",
			Description: "Asking 'Do you remember?' creates anxiety. Memory loss is the core symptom—testing it causes shame.",
			Action:      "Replace memory questions with feeling questions: 'What did you enjoy about that?' or 'How did that make you feel?'",
			Example:     "Instead of 'Do you remember our trip?' say 'I was thinking about our trip. You seemed happy then.'",
		}}, recs...)
	}

	needsFallback := len(recs) == 0

	recs = append(recs, stageRecommendation(stage))

	if needsFallback {
		recs = append(recs, model.Recommendation{
			Priority:    model.PriorityMedium,
			Category:    "improvement",
			Title:       "Structure Your Visit",
			Description: "Follow the ideal 7-minute structure: Arrival → Orientation → Familiar Thread → Reflection → Presence → Closing",
			Action:      "Each phase has a purpose. Don't rush. Silence is okay. Repetition tomorrow is expected.",
			Example:     "See the full 7-minute ideal session script for details.",
		})
	}

	return recs
}

// principleRemediation returns the fixed remediation for a low-scoring
// principle
func principleRemediation(p model.Principle) model.Recommendation {
	switch p {
	case model.PrincipleRitualOverStimulation:
		return model.Recommendation{
			Priority:    model.PriorityHigh,
			Category:    "structure",
			Title:       "Create Predictable Ritual",
			Description: "Novelty increases anxiety in dementia. Use the same words, same time, same structure every visit.",
			Action:      "Write a script for your opening and closing. Use it every time, word-for-word.",
			Example:     "Opening: 'Good morning, [Name]. It's time for our visit. I'm here with you.' Closing: 'Thank you for this time. I'll see you tomorrow.'",
		}
	case model.PrincipleEmotionOverAccuracy:
		return model.Recommendation{
			Priority:    model.PriorityImmediate,
			Category:    "communication",
			Title:       "Validate Feelings, Not Facts",
			Description: "Correcting their reality creates conflict. Their emotions are always valid, even if facts aren't.",
			Action:      "When they say something incorrect, respond to the feeling behind it instead of correcting.",
			Example:     "If they say 'I need to pick up the kids' (who are grown), say: 'You're a caring parent' not 'Your kids are adults now.'",
		}
	case model.PrinciplePresenceOverPerformance:
		return model.Recommendation{
			Priority:    model.PriorityHigh,
			Category:    "approach",
			Title:       "Remove All Pressure",
			Description: "Never ask them to remember, perform, or succeed. Your presence is the gift.",
			Action:      "Replace questions with statements. Give permission to rest. Accept silence.",
			Example:     "'We can just sit together' not 'Can you tell me about...?' Silence is companionship.",
		}
	default: // short_steady_repeatable
		return model.Recommendation{
			Priority:    model.PriorityMedium,
			Category:    "structure",
			Title:       "Keep It Brief",
			Description: "Short visits prevent fatigue. Better to return daily than overwhelm today.",
			Action:      "Aim for 5-7 minutes. Use short sentences (10-12 words max). One idea per sentence.",
			Example:     "'I'm here with you.' (pause) 'Today is calm.' (pause) Not: 'I'm here with you today and wanted to see how you're doing and talk about the garden...'",
		}
	}
}

// stageRecommendation returns the fixed guidance for a training stage
func stageRecommendation(stage model.TrainingStage) model.Recommendation {
	switch stage {
	case model.StageEarly:
		return model.Recommendation{
			Priority:    model.PriorityHigh,
			Category:    "stage_specific",
			Title:       "Early Stage: Affirm Competence",
			Description: "In early dementia, the person is very aware of their losses. Avoid any framing around 'memory improvement' or 'cognitive exercises.'",
			Action:      "Frame interactions as social visits, not therapy. Normalize difficulty: 'Everyone has trouble with names sometimes.'",
			Example:     "'This is just a quiet visit' not 'Let's work on your memory today'",
		}
	case model.StageLate:
		return model.Recommendation{
			Priority:    model.PriorityHigh,
			Category:    "stage_specific",
			Title:       "Late Stage: Presence Over Words",
			Description: "Language may be minimal. Your tone and presence matter more than words. Very short sessions (3-5 min).",
			Action:      "Reduce questions. Use more statements. Accept long silences. Focus on calming the nervous system.",
			Example:     "'You're not alone. I'm here.' Then sit quietly together.",
		}
	default: // moderate
		return model.Recommendation{
			Priority:    model.PriorityHigh,
			Category:    "stage_specific",
			Title:       "Moderate Stage: Rhythm & Repetition",
			Description: "At this stage, ritual matters more than conversation quality. Same time, same words, same structure.",
			Action:      "Use the exact same opening and closing every visit. Repeat favorite topics often—repetition is success.",
			Example:     "Same greeting daily: 'Good morning, [Name]. It's time for our visit. I'm here with you.'",
		}
	}
}
