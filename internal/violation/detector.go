// Package violation scans caregiver turns for specifically forbidden
// conversational patterns. The scan is deliberately independent of the
// principle scorer even though some phrase lists overlap: violations are
// actionable per-turn flags, the scorer produces an aggregate number.
package violation

import (
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Detector flags forbidden patterns in caregiver turns
type Detector struct {
	memoryTestingPhrases []string
	correctionPhrases    []string
}

// NewDetector creates a new violation detector
func NewDetector() *Detector {
	return &Detector{
		memoryTestingPhrases: []string{
			"do you remember", "try to remember", "don't you remember",
		},
		correctionPhrases: []string{
			"no, actually", "that's not right", "that's wrong",
		},
	}
}

// Detect scans every caregiver turn for violations. Checks are
// independent, not mutually exclusive: a single turn can produce
// multiple violation entries. Turn numbers are 1-based indices into the
// caregiver turns.
func (d *Detector) Detect(turns []model.Turn) []model.Violation {
	var violations []model.Violation

	for i, turn := range model.CaregiverTurns(turns) {
		turnNumber := i + 1

		if containsAny(turn.Normalized, d.memoryTestingPhrases) {
			violations = append(violations, model.Violation{
				Severity:   model.ViolationHigh,
				Type:       model.ViolationMemoryTesting,
				TurnNumber: turnNumber,
				Text:       excerpt(turn.Text),
				Issue:      "Testing memory creates anxiety and shame",
				Correction: "Instead ask: 'What did you like about that?' or 'Tell me more about that'",
			})
		}

		if containsAny(turn.Normalized, d.correctionPhrases) {
			violations = append(violations, model.Violation{
				Severity:   model.ViolationHigh,
				Type:       model.ViolationCorrection,
				TurnNumber: turnNumber,
				Text:       excerpt(turn.Text),
				Issue:      "Correcting creates conflict and distress",
				Correction: "Validate their emotion: 'That sounds important to you' or 'I can see why you'd think that'",
			})
		}

		if countWord(turn.Normalized, "or") >= 2 {
			violations = append(violations, model.Violation{
				Severity:   model.ViolationMedium,
				Type:       model.ViolationTooManyChoices,
				TurnNumber: turnNumber,
				Text:       excerpt(turn.Text),
				Issue:      "Multiple choices increase confusion",
				Correction: "Simplify to one option or no choice: 'It's time for lunch' vs 'Do you want lunch now or later?'",
			})
		}

		if strings.Count(turn.Normalized, "?") >= 3 {
			violations = append(violations, model.Violation{
				Severity:   model.ViolationMedium,
				Type:       model.ViolationTooManyQuestions,
				TurnNumber: turnNumber,
				Text:       excerpt(turn.Text),
				Issue:      "Multiple questions create pressure",
				Correction: "One question at a time, or statements instead: 'I'm curious about your garden' vs asking multiple garden questions",
			})
		}
	}

	return violations
}

// HasHighSeverity reports whether any violation in the list is high severity
func HasHighSeverity(violations []model.Violation) bool {
	for _, v := range violations {
		if v.Severity == model.ViolationHigh {
			return true
		}
	}
	return false
}

// excerpt truncates turn text to at most 100 characters
func excerpt(text string) string {
	if len(text) > 100 {
		return text[:100]
	}
	return text
}

// countWord counts whole-word occurrences of word in text
func countWord(text, word string) int {
	count := 0
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ".,!?;:'\"") == word {
			count++
		}
	}
	return count
}

// containsAny reports whether text contains any of the given phrases
func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
