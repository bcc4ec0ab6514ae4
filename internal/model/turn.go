package model

// Speaker identifies who produced a conversation turn
type Speaker string

const (
	SpeakerCaregiver Speaker = "caregiver"
	SpeakerPatient   Speaker = "patient"
	SpeakerUnknown   Speaker = "unknown"
)

// Turn represents a single utterance in a parsed transcript.
// Turns are ordered; transcript line order is the only relationship.
type Turn struct {
	Speaker    Speaker `json:"speaker"`
	Text       string  `json:"text"`
	Normalized string  `json:"-"` // lowercased text used for keyword matching
}

// CaregiverTurns filters a turn sequence down to caregiver utterances,
// preserving order
func CaregiverTurns(turns []Turn) []Turn {
	var out []Turn
	for _, t := range turns {
		if t.Speaker == SpeakerCaregiver {
			out = append(out, t)
		}
	}
	return out
}
