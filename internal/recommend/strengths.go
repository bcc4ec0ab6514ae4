package recommend

import (
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Strengths identifies what the caregiver did well. Findings are
// deduplicated and returned in stable check order so identical
// transcripts always produce identical output.
func Strengths(turns []model.Turn) []string {
	caregiver := model.CaregiverTurns(turns)
	if len(caregiver) == 0 {
		return nil
	}

	var strengths []string

	for _, turn := range caregiver {
		if containsAny(turn.Normalized, []string{"that sounds", "i understand", "i hear you"}) {
			strengths = append(strengths, "Used emotional validation")
			break
		}
	}

	for _, turn := range caregiver {
		if strings.Contains(turn.Normalized, "take your time") {
			strengths = append(strengths, "Gave permission to go slow")
			break
		}
	}

	testingFound := false
	for _, turn := range caregiver {
		if strings.Contains(turn.Normalized, "remember") && strings.Contains(turn.Text, "?") {
			testingFound = true
			break
		}
	}
	if !testingFound {
		strengths = append(strengths, "Avoided testing memory")
	}

	shortStatements := 0
	for _, turn := range caregiver {
		if len(strings.Fields(turn.Text)) <= 12 {
			shortStatements++
		}
	}
	if float64(shortStatements)/float64(len(caregiver)) > 0.7 {
		strengths = append(strengths, "Kept statements short and clear")
	}

	for _, turn := range caregiver {
		if containsAny(turn.Normalized, []string{"i'm here", "together", "with you"}) {
			strengths = append(strengths, "Emphasized presence and togetherness")
			break
		}
	}

	return strengths
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
