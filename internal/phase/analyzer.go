// Package phase infers which ideal-session phases appear in a parsed
// conversation. Detection is keyword-set membership per phase, not
// mutually exclusive and not sequential: real visits don't follow rigid
// phase boundaries, so no ordering is enforced.
package phase

import (
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Analyzer detects ideal-session phases in caregiver turns
type Analyzer struct {
	arrivalWords     []string
	orientationWords []string
	threadWords      []string
	reflectionWords  []string
	closingWords     []string
}

// NewAnalyzer creates a new phase analyzer.
//
// Known limitation carried over from the original rubric: the ideal
// session lists six phases but "Gentle Presence" has no keyword
// detector, so it is always reported as missing.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		arrivalWords:     []string{"good morning", "good afternoon", "hello", "time for"},
		orientationWords: []string{"today", "at home", "okay", "calm"},
		threadWords:      []string{"like", "enjoy", "loved", "always"},
		reflectionWords:  []string{"sound", "seem", "feel", "care"},
		closingWords:     []string{"thank you", "tomorrow", "next time", "see you"},
	}
}

// Analyze reports detected and missing phases. Detected phases appear in
// canonical phase order; follows_structure requires at least 4 of 6.
func (a *Analyzer) Analyze(turns []model.Turn) model.PhaseAnalysis {
	caregiver := model.CaregiverTurns(turns)
	allPhases := model.PhaseNames()

	if len(caregiver) == 0 {
		return model.PhaseAnalysis{
			FollowsStructure: false,
			DetectedPhases:   []string{},
			MissingPhases:    allPhases,
		}
	}

	detected := make(map[string]bool)

	if containsAny(caregiver[0].Normalized, a.arrivalWords) {
		detected["Arrival"] = true
	}

	for _, turn := range firstN(caregiver, 3) {
		if containsAny(turn.Normalized, a.orientationWords) {
			detected["Gentle Orientation"] = true
			break
		}
	}

	for _, turn := range caregiver {
		if strings.Contains(turn.Normalized, "you") && containsAny(turn.Normalized, a.threadWords) {
			detected["Familiar Thread"] = true
			break
		}
	}

	for _, turn := range caregiver {
		if containsAny(turn.Normalized, a.reflectionWords) {
			detected["Emotional Reflection"] = true
			break
		}
	}

	if containsAny(caregiver[len(caregiver)-1].Normalized, a.closingWords) {
		detected["Consistent Closing"] = true
	}

	var detectedOrdered, missing []string
	for _, name := range allPhases {
		if detected[name] {
			detectedOrdered = append(detectedOrdered, name)
		} else {
			missing = append(missing, name)
		}
	}

	return model.PhaseAnalysis{
		FollowsStructure: len(detectedOrdered) >= 4,
		DetectedPhases:   detectedOrdered,
		MissingPhases:    missing,
		PhaseCount:       len(detectedOrdered),
	}
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func firstN(turns []model.Turn, n int) []model.Turn {
	if len(turns) < n {
		return turns
	}
	return turns[:n]
}
