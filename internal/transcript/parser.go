package transcript

import (
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Parser splits a raw two-party transcript into structured speaker turns
type Parser struct {
	caregiverName string
	patientName   string
}

// NewParser creates a parser for the given display names
func NewParser(caregiverName, patientName string) *Parser {
	return &Parser{
		caregiverName: caregiverName,
		patientName:   patientName,
	}
}

// Parse converts newline-delimited transcript text into ordered turns.
// Malformed lines never fail; they become unknown-speaker turns.
// Empty input yields an empty sequence.
func (p *Parser) Parse(text string) []model.Turn {
	var turns []model.Turn

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, utterance := p.classifyLine(line)
		turns = append(turns, model.Turn{
			Speaker:    speaker,
			Text:       utterance,
			Normalized: strings.ToLower(utterance),
		})
	}

	return turns
}

// classifyLine determines the speaker for one transcript line.
// Detection order: exact name prefix, then a generic "Label: text" form,
// then the whole line as an unattributed utterance.
func (p *Parser) classifyLine(line string) (model.Speaker, string) {
	lower := strings.ToLower(line)

	if prefix := strings.ToLower(p.caregiverName) + ":"; p.caregiverName != "" && strings.HasPrefix(lower, prefix) {
		return model.SpeakerCaregiver, strings.TrimSpace(line[len(prefix):])
	}
	if prefix := strings.ToLower(p.patientName) + ":"; p.patientName != "" && strings.HasPrefix(lower, prefix) {
		return model.SpeakerPatient, strings.TrimSpace(line[len(prefix):])
	}

	if idx := strings.Index(line, ":"); idx >= 0 {
		label := strings.ToLower(strings.TrimSpace(line[:idx]))
		utterance := strings.TrimSpace(line[idx+1:])
		switch {
		case strings.Contains(label, "caregiver") || strings.Contains(label, "family"):
			return model.SpeakerCaregiver, utterance
		case strings.Contains(label, "patient") || strings.Contains(label, "elder"):
			return model.SpeakerPatient, utterance
		default:
			return model.SpeakerUnknown, utterance
		}
	}

	return model.SpeakerUnknown, line
}
