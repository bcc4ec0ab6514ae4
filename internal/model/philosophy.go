package model

// SessionPhase describes one phase of the ideal seven-minute visit
type SessionPhase struct {
	Name      string   `json:"name"`
	Duration  string   `json:"duration"`
	Purpose   string   `json:"purpose"`
	Example   string   `json:"example"`
	KeyPoints []string `json:"key_points"`
}

// IdealSessionMinutes is the target visit length in minutes
const IdealSessionMinutes = 7

// Ethos is the one-line statement of the care philosophy
const Ethos = "We build daily rituals that help people with memory loss feel present and expected—without asking them to remember why."

// IdealSession returns the canonical phase structure of an ideal visit,
// in order. Note that Gentle Presence has no keyword detector in the
// phase analyzer; it is listed here for the script but always reported
// as missing by analysis.
func IdealSession() []SessionPhase {
	return []SessionPhase{
		{
			Name:     "Arrival",
			Duration: "0-1 min",
			Purpose:  "Predictability & Safety",
			Example:  "Good morning, [Name]. It's time for our visit. I'm here with you.",
			KeyPoints: []string{
				"Use their name",
				"Say 'visit' not 'session'",
				"State presence before purpose",
				"Pause - don't rush",
			},
		},
		{
			Name:     "Gentle Orientation",
			Duration: "1-2 min",
			Purpose:  "Orientation Without Testing",
			Example:  "It's a calm morning. You're at home, and things are okay right now.",
			KeyPoints: []string{
				"Never ask 'Do you know...?'",
				"Never wait for confirmation",
				"Orientation is offered, not requested",
				"No testing",
			},
		},
		{
			Name:     "Familiar Thread",
			Duration: "2-4 min",
			Purpose:  "Memory Without Recall Pressure",
			Example:  "I was thinking about your garden today. You always seemed to enjoy being around plants.",
			KeyPoints: []string{
				"No 'when', 'who', or 'what year'",
				"Use 'Tell me', 'How did it feel', 'What did you like'",
				"Repetition is success",
				"Follow emotion, not facts",
			},
		},
		{
			Name:     "Emotional Reflection",
			Duration: "4-5 min",
			Purpose:  "Identity Support",
			Example:  "When you talk about that, you sound calm. That seems like something you cared about.",
			KeyPoints: []string{
				"Reflect who they are, not what they remember",
				"Acknowledge emotions",
				"Let them respond or sit quietly",
				"This minute is crucial",
			},
		},
		{
			Name:     "Gentle Presence",
			Duration: "5-6 min",
			Purpose:  "No Performance Required",
			Example:  "We can stay here with that feeling for a moment. It's okay to rest.",
			KeyPoints: []string{
				"Silence is allowed",
				"No pressure to speak",
				"If tired, validate that",
				"Presence over conversation",
			},
		},
		{
			Name:     "Consistent Closing",
			Duration: "6-7 min",
			Purpose:  "Trust & Continuity",
			Example:  "Thank you for spending this time with me. I'll visit you again tomorrow.",
			KeyPoints: []string{
				"Always the same closing",
				"No recap",
				"No instruction",
				"No 'goodbye forever'",
				"Promise return",
			},
		},
	}
}

// PhaseNames returns the canonical phase names in order
func PhaseNames() []string {
	phases := IdealSession()
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name
	}
	return names
}
