package score

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Scorer evaluates a parsed conversation against the four care principles
type Scorer struct {
	greetingWords     []string
	structureWords    []string
	closingWords      []string
	validationPhrases []string
	correctionPhrases []string
	invitationPhrases []string
	testingPatterns   []*regexp.Regexp
}

// NewScorer creates a new principle scorer
func NewScorer() *Scorer {
	return &Scorer{
		greetingWords:  []string{"good morning", "good afternoon", "hello", "hi"},
		structureWords: []string{"today", "time for", "visit", "together"},
		closingWords:   []string{"thank you", "see you", "tomorrow", "next time"},
		validationPhrases: []string{
			"i understand", "that sounds", "i hear you", "that must",
			"it seems", "you feel", "that's important", "i can see",
		},
		correctionPhrases: []string{
			"no, actually", "that's not right", "remember when", "don't you remember",
			"try to remember", "you forgot", "that's wrong", "no, it was",
		},
		invitationPhrases: []string{
			"if you'd like", "would you like", "we can", "it's okay",
			"no need to", "take your time", "when you're ready",
		},
		testingPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bdo you remember\b`),
			regexp.MustCompile(`\bwhat year\b`),
			regexp.MustCompile(`\bwho was\b`),
			regexp.MustCompile(`\bwhen did\b`),
			regexp.MustCompile(`\btry to\b`),
			regexp.MustCompile(`\bcan you recall\b`),
		},
	}
}

// Score runs all four principle sub-scorers over the parsed turns.
// Every returned score is clamped into [0,1].
func (s *Scorer) Score(turns []model.Turn) map[model.Principle]model.PrincipleScore {
	caregiver := model.CaregiverTurns(turns)

	scores := make(map[model.Principle]model.PrincipleScore, len(model.Principles()))
	for _, p := range model.Principles() {
		switch p.Key {
		case model.PrincipleRitualOverStimulation:
			scores[p.Key] = s.scoreRitualConsistency(caregiver)
		case model.PrincipleEmotionOverAccuracy:
			scores[p.Key] = s.scoreEmotionalValidation(caregiver)
		case model.PrinciplePresenceOverPerformance:
			scores[p.Key] = s.scoreNoPressure(caregiver)
		case model.PrincipleShortSteadyRepeatable:
			scores[p.Key] = s.scoreBrevityStructure(caregiver)
		}
	}

	return scores
}

// Overall aggregates principle scores into a single weighted score,
// rounded to 2 decimals
func Overall(scores map[model.Principle]model.PrincipleScore) float64 {
	var total float64
	for _, p := range model.Principles() {
		total += scores[p.Key].Score * p.Weight
	}
	return math.Round(total*100) / 100
}

// scoreRitualConsistency checks whether the caregiver follows a
// predictable greeting/structure/closing ritual
func (s *Scorer) scoreRitualConsistency(caregiver []model.Turn) model.PrincipleScore {
	if len(caregiver) == 0 {
		return model.PrincipleScore{Score: 0, Evidence: []string{"No caregiver statements detected"}}
	}

	acc := newAccumulator(0.7)

	if containsAny(caregiver[0].Normalized, s.greetingWords) {
		acc.add(0.1, "✓ Started with a greeting")
	} else {
		acc.add(-0.1, "✗ Missing greeting at start")
	}

	for _, turn := range firstN(caregiver, 3) {
		if containsAny(turn.Normalized, s.structureWords) {
			acc.add(0.1, "✓ Used structure words early")
			break
		}
	}

	if containsAny(caregiver[len(caregiver)-1].Normalized, s.closingWords) {
		acc.add(0.1, "✓ Included proper closing")
	} else {
		acc.add(-0.1, "✗ Missing clear closing")
	}

	return acc.result()
}

// scoreEmotionalValidation checks whether the caregiver validates
// emotions rather than correcting facts
func (s *Scorer) scoreEmotionalValidation(caregiver []model.Turn) model.PrincipleScore {
	acc := newAccumulator(0.7)

	validationCount := countTurnsContaining(caregiver, s.validationPhrases)
	if validationCount > 0 {
		acc.add(math.Min(0.2, float64(validationCount)*0.1),
			fmt.Sprintf("✓ Used %d validation phrase(s)", validationCount))
	} else {
		acc.add(-0.15, "✗ No emotional validation detected")
	}

	correctionCount := countTurnsContaining(caregiver, s.correctionPhrases)
	if correctionCount > 0 {
		acc.add(-math.Min(0.3, float64(correctionCount)*0.15),
			fmt.Sprintf("✗ Corrected or tested %d time(s) - AVOID THIS", correctionCount))
	} else {
		acc.add(0.1, "✓ Did not correct or test memory")
	}

	return acc.result()
}

// scoreNoPressure checks whether the caregiver avoids pressure to
// remember or perform
func (s *Scorer) scoreNoPressure(caregiver []model.Turn) model.PrincipleScore {
	acc := newAccumulator(0.8)

	// At most one testing hit counted per turn
	testingCount := 0
	for _, turn := range caregiver {
		for _, pattern := range s.testingPatterns {
			if pattern.MatchString(turn.Normalized) {
				testingCount++
				break
			}
		}
	}

	if testingCount > 0 {
		acc.add(-math.Min(0.4, float64(testingCount)*0.15),
			fmt.Sprintf("✗ Asked %d testing question(s) - AVOID THIS", testingCount))
	} else {
		acc.add(0.1, "✓ No testing or memory quizzes")
	}

	invitationCount := countTurnsContaining(caregiver, s.invitationPhrases)
	if invitationCount > 0 {
		acc.add(math.Min(0.15, float64(invitationCount)*0.05),
			fmt.Sprintf("✓ Used %d gentle invitation(s)", invitationCount))
	}

	return acc.result()
}

// scoreBrevityStructure checks whether caregiver statements stay short
// and digestible
func (s *Scorer) scoreBrevityStructure(caregiver []model.Turn) model.PrincipleScore {
	if len(caregiver) == 0 {
		return model.PrincipleScore{Score: 0}
	}

	acc := newAccumulator(0.7)

	totalWords := 0
	longStatements := 0
	for _, turn := range caregiver {
		words := len(strings.Fields(turn.Text))
		totalWords += words
		if words > 25 {
			longStatements++
		}
	}
	avgWords := float64(totalWords) / float64(len(caregiver))

	switch {
	case avgWords <= 12:
		acc.add(0.2, fmt.Sprintf("✓ Average %.1f words per statement (ideal: ≤12)", avgWords))
	case avgWords <= 18:
		acc.add(0.1, fmt.Sprintf("◐ Average %.1f words per statement (acceptable: ≤18)", avgWords))
	default:
		acc.add(-0.1, fmt.Sprintf("✗ Average %.1f words per statement (too long: >18)", avgWords))
	}

	if longStatements > 0 {
		acc.add(-math.Min(0.2, float64(longStatements)*0.05),
			fmt.Sprintf("✗ %d statement(s) over 25 words - break these up", longStatements))
	} else {
		acc.add(0.1, "✓ All statements appropriately sized")
	}

	return acc.result()
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

// countTurnsContaining counts turns whose normalized text contains at
// least one of the given phrases
func countTurnsContaining(turns []model.Turn, phrases []string) int {
	count := 0
	for _, turn := range turns {
		if containsAny(turn.Normalized, phrases) {
			count++
		}
	}
	return count
}

// firstN returns up to the first n turns
func firstN(turns []model.Turn, n int) []model.Turn {
	if len(turns) < n {
		return turns
	}
	return turns[:n]
}
