// Package safety contains the two message-safety layers: a stateless
// tiered keyword classifier used as a synchronous assessment tool, and a
// config-driven monitor that creates persisted alerts with notification
// side effects. Their keyword lists are intentionally separate (see
// model.SafetyConfig).
package safety

import (
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Classifier assigns a risk tier to a single message. Tiers are checked
// in strict priority order (crisis > distress > agitation); the first
// matching tier wins and there is no fallthrough.
type Classifier struct {
	crisisKeywords    []string
	distressKeywords  []string
	agitationKeywords []string
}

// NewClassifier creates the assessment classifier with its fixed
// keyword tiers
func NewClassifier() *Classifier {
	return &Classifier{
		crisisKeywords: []string{
			"kill", "die", "suicide", "harm myself", "hurt myself",
			"end it all", "want to die", "better off dead",
		},
		distressKeywords: []string{
			"help me", "scared", "terrified", "can't breathe",
			"chest pain", "can't move", "falling", "emergency",
		},
		agitationKeywords: []string{
			"angry", "frustrated", "leave me alone", "go away",
			"stop", "hate this", "get out",
		},
	}
}

// Assess classifies a message. It never fails: a message matching no
// tier always falls through to clear/none.
func (c *Classifier) Assess(message string) model.SafetyAssessment {
	lower := strings.ToLower(message)

	if matched := matchKeywords(lower, c.crisisKeywords); len(matched) > 0 {
		return model.SafetyAssessment{
			Tier:            model.TierCritical,
			RiskLevel:       model.RiskHigh,
			MatchedKeywords: matched,
			RecommendedActions: []string{
				"Immediately notify emergency contacts",
				"Engage crisis protocol",
				"Do NOT continue normal conversation",
				"Provide crisis hotline: 988 (Suicide & Crisis Lifeline)",
				"Stay with patient, use calming presence",
				`Say: "I hear that you're in pain. Your safety is important. Help is available."`,
			},
		}
	}

	if matched := matchKeywords(lower, c.distressKeywords); len(matched) > 0 {
		return model.SafetyAssessment{
			Tier:            model.TierElevated,
			RiskLevel:       model.RiskModerate,
			MatchedKeywords: matched,
			RecommendedActions: []string{
				"Alert caregiver immediately",
				"Ask gentle clarifying questions",
				`Provide reassurance: "You're safe. Help is here."`,
				"If medical symptoms (chest pain, breathing issues), call 911",
				"Remain calm and present",
			},
		}
	}

	if matched := matchKeywords(lower, c.agitationKeywords); len(matched) > 0 {
		return model.SafetyAssessment{
			Tier:            model.TierMonitor,
			RiskLevel:       model.RiskLowModerate,
			MatchedKeywords: matched,
			RecommendedActions: []string{
				`Validate feelings: "I understand you're feeling frustrated"`,
				`Offer to end session: "Would you like to take a break?"`,
				"Switch to calming content (music, nature sounds)",
				"Give space, reduce stimulation",
				"Note in session log for caregiver review",
			},
		}
	}

	return model.SafetyAssessment{
		Tier:      model.TierClear,
		RiskLevel: model.RiskNone,
	}
}

// matchKeywords returns the keywords present in the lowercased message,
// in list order
func matchKeywords(lower string, keywords []string) []string {
	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
