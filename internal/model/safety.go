package model

import "time"

// SafetyTier is one of four escalating risk categories assigned to a
// single message via keyword matching. Tiers are checked in strict
// priority order; the first match wins.
type SafetyTier string

const (
	TierClear    SafetyTier = "clear"
	TierMonitor  SafetyTier = "monitor"
	TierElevated SafetyTier = "elevated"
	TierCritical SafetyTier = "critical"
)

// RiskLevel is the human-facing risk label paired with each tier
type RiskLevel string

const (
	RiskNone        RiskLevel = "none"
	RiskLowModerate RiskLevel = "low-moderate"
	RiskModerate    RiskLevel = "moderate"
	RiskHigh        RiskLevel = "high"
)

// SafetyAssessment is the stateless result of classifying one message.
// It has no identity and no lifecycle beyond the call that produced it.
type SafetyAssessment struct {
	Tier               SafetyTier `json:"tier"`
	RiskLevel          RiskLevel  `json:"risk_level"`
	MatchedKeywords    []string   `json:"matched_keywords,omitempty"`
	RecommendedActions []string   `json:"recommended_actions,omitempty"`
}

// AlertType classifies a persisted safety alert
type AlertType string

const (
	AlertCrisis   AlertType = "crisis"
	AlertDistress AlertType = "distress"
)

// AlertSeverity is the single severity scale used for persisted alerts.
// Crisis maps to critical and distress to warning, keeping the scale
// consistent with the high/moderate risk split in SafetyAssessment.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// SafetyAlert is a persisted record of a crisis or distress detection
type SafetyAlert struct {
	ID             string        `json:"id"`
	PatientID      int64         `json:"patient_id"`
	ConversationID int64         `json:"conversation_id,omitempty"`
	AlertType      AlertType     `json:"alert_type"`
	Severity       AlertSeverity `json:"severity"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	TriggerText    string        `json:"trigger_text"` // truncated to 500 characters
	CreatedAt      time.Time     `json:"created_at"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty"`
	ResolutionNote string        `json:"resolution_note,omitempty"`
}
