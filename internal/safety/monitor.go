package safety

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehiller1/dementia/internal/model"
)

// AlertStore persists safety alerts
type AlertStore interface {
	SaveAlert(ctx context.Context, alert *model.SafetyAlert) error
}

// Notifier fans a created alert out to caregivers
type Notifier interface {
	AlertCreated(ctx context.Context, alert *model.SafetyAlert) error
}

// CheckResult is the outcome of monitoring one message
type CheckResult struct {
	Alert     *model.SafetyAlert // nil when no alert was created
	Immediate bool               // normal response generation must be short-circuited
	Confusion bool               // confusion/delusion pattern matched
}

// Monitor watches live conversation messages for safety concerns using
// operator-configured keyword lists. Unlike the Classifier, a positive
// detection has side effects: an alert is persisted and caregivers are
// notified.
type Monitor struct {
	crisisKeywords   []string
	distressKeywords []string
	store            AlertStore
	notifier         Notifier
}

// NewMonitor creates a monitor with the configured keyword lists.
// Store and notifier may be nil, in which case the corresponding side
// effect is skipped.
func NewMonitor(cfg model.SafetyConfig, store AlertStore, notifier Notifier) *Monitor {
	return &Monitor{
		crisisKeywords:   cfg.CrisisKeywords,
		distressKeywords: cfg.DistressKeywords,
		store:            store,
		notifier:         notifier,
	}
}

// CheckMessage analyzes one patient message. Crisis takes priority over
// distress; confusion is reported independently and never creates an
// alert on its own.
func (m *Monitor) CheckMessage(ctx context.Context, patientID, conversationID int64, message string) (CheckResult, error) {
	result := CheckResult{
		Confusion: DetectConfusion(message),
	}

	lower := strings.ToLower(message)

	if matched := matchKeywords(lower, m.crisisKeywords); len(matched) > 0 {
		alert, err := m.createAlert(ctx, patientID, conversationID, message, model.AlertCrisis, matched)
		if err != nil {
			return result, err
		}
		result.Alert = alert
		result.Immediate = true
		return result, nil
	}

	if matched := matchKeywords(lower, m.distressKeywords); len(matched) > 0 {
		alert, err := m.createAlert(ctx, patientID, conversationID, message, model.AlertDistress, matched)
		if err != nil {
			return result, err
		}
		result.Alert = alert
		result.Immediate = true
		return result, nil
	}

	return result, nil
}

func (m *Monitor) createAlert(
	ctx context.Context,
	patientID, conversationID int64,
	message string,
	alertType model.AlertType,
	keywords []string,
) (*model.SafetyAlert, error) {
	alert := &model.SafetyAlert{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		ConversationID: conversationID,
		AlertType:      alertType,
		TriggerText:    truncate(message, 500),
		CreatedAt:      time.Now().UTC(),
	}

	switch alertType {
	case model.AlertCrisis:
		alert.Severity = model.SeverityCritical
		alert.Title = "Crisis Language Detected"
		alert.Description = fmt.Sprintf(
			"Patient used concerning language that may indicate suicide risk or self-harm. Keywords: %s",
			strings.Join(keywords, ", "))
	case model.AlertDistress:
		alert.Severity = model.SeverityWarning
		alert.Title = "Distress Detected"
		alert.Description = fmt.Sprintf(
			"Patient reported distress or potential injury. Keywords: %s",
			strings.Join(keywords, ", "))
	}

	if m.store != nil {
		if err := m.store.SaveAlert(ctx, alert); err != nil {
			return nil, fmt.Errorf("save alert: %w", err)
		}
	}

	if m.notifier != nil {
		if err := m.notifier.AlertCreated(ctx, alert); err != nil {
			// The alert is already persisted; notification failure must
			// not suppress it
			return alert, nil
		}
	}

	return alert, nil
}

// truncate limits s to at most n bytes
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
