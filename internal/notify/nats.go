// Package notify fans persisted safety alerts out to caregivers over
// NATS, with per-patient throttling for non-critical alerts.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ehiller1/dementia/internal/model"
)

// AlertEvent is the wire format published for each alert
type AlertEvent struct {
	AlertID     string              `json:"alert_id"`
	PatientID   int64               `json:"patient_id"`
	AlertType   model.AlertType     `json:"alert_type"`
	Severity    model.AlertSeverity `json:"severity"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
}

// publisher is the subset of nats.Conn used here
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes alert events to a NATS subject. Critical
// alerts are never throttled; warnings pass through the per-patient
// limiter and are dropped when over rate (the alert itself is already
// persisted).
type NATSNotifier struct {
	conn    publisher
	closer  func()
	subject string
	limiter *Limiter
	logger  *slog.Logger
}

// NewNATSNotifier connects to NATS and creates a notifier
func NewNATSNotifier(cfg model.NotifyConfig, logger *slog.Logger) (*NATSNotifier, error) {
	if cfg.NATSURL == "" {
		return nil, fmt.Errorf("NATS URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	nc, err := nats.Connect(cfg.NATSURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "safety.alert.created"
	}

	ratePerSec := cfg.RatePerSec
	if ratePerSec <= 0 {
		ratePerSec = 1
	}

	return &NATSNotifier{
		conn:    nc,
		closer:  nc.Close,
		subject: subject,
		limiter: NewLimiter(ratePerSec, cfg.Burst),
		logger:  logger,
	}, nil
}

// AlertCreated publishes one alert event
func (n *NATSNotifier) AlertCreated(_ context.Context, alert *model.SafetyAlert) error {
	if alert.Severity != model.SeverityCritical && !n.limiter.Allow(alert.PatientID) {
		n.logger.Warn("notification throttled",
			"alert_id", alert.ID, "patient_id", alert.PatientID, "severity", alert.Severity)
		return nil
	}

	payload, err := json.Marshal(AlertEvent{
		AlertID:     alert.ID,
		PatientID:   alert.PatientID,
		AlertType:   alert.AlertType,
		Severity:    alert.Severity,
		Title:       alert.Title,
		Description: alert.Description,
		CreatedAt:   alert.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("publish alert %s: %w", alert.ID, err)
	}

	n.logger.Info("alert published",
		"alert_id", alert.ID, "patient_id", alert.PatientID, "severity", alert.Severity)
	return nil
}

// Close releases the NATS connection
func (n *NATSNotifier) Close() {
	if n.closer != nil {
		n.closer()
	}
}
