// Package alert persists safety alerts and report summaries in SQLite.
package alert

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ehiller1/dementia/internal/model"
)

// Store manages the alert and report database
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at path, creating the
// schema if it does not exist
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			patient_id INTEGER NOT NULL,
			conversation_id INTEGER,
			alert_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			trigger_text TEXT,
			created_at TEXT NOT NULL,
			acknowledged_at TEXT,
			resolved_at TEXT,
			resolution_note TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_patient_id ON alerts(patient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			caregiver_name TEXT,
			patient_name TEXT,
			dementia_stage TEXT NOT NULL,
			overall_score REAL NOT NULL,
			grade TEXT NOT NULL,
			violation_count INTEGER NOT NULL,
			report_json TEXT NOT NULL,
			analyzed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_analyzed_at ON reports(analyzed_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// SaveAlert persists a new safety alert
func (s *Store) SaveAlert(ctx context.Context, alert *model.SafetyAlert) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (id, patient_id, conversation_id, alert_type, severity,
			title, description, trigger_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.PatientID, alert.ConversationID, string(alert.AlertType),
		string(alert.Severity), alert.Title, alert.Description, alert.TriggerText,
		alert.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting alert: %w", err)
	}
	return nil
}

// GetAlert returns one alert by ID, or nil if it does not exist
func (s *Store) GetAlert(ctx context.Context, id string) (*model.SafetyAlert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, patient_id, conversation_id, alert_type, severity, title,
			description, trigger_text, created_at, acknowledged_at, resolved_at, resolution_note
		 FROM alerts WHERE id = ?`, id)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying alert %s: %w", id, err)
	}
	return alert, nil
}

// ListOptions filters ListAlerts
type ListOptions struct {
	PatientID      int64 // 0 means all patients
	UnresolvedOnly bool
	Limit          int // 0 means default (100)
}

// ListAlerts returns alerts newest-first
func (s *Store) ListAlerts(ctx context.Context, opts ListOptions) ([]*model.SafetyAlert, error) {
	query := `SELECT id, patient_id, conversation_id, alert_type, severity, title,
		description, trigger_text, created_at, acknowledged_at, resolved_at, resolution_note
	 FROM alerts WHERE 1=1`
	var args []any

	if opts.PatientID != 0 {
		query += ` AND patient_id = ?`
		args = append(args, opts.PatientID)
	}
	if opts.UnresolvedOnly {
		query += ` AND resolved_at IS NULL`
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*model.SafetyAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// Acknowledge marks an alert as seen by a caregiver
func (s *Store) Acknowledge(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET acknowledged_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("acknowledging alert %s: %w", id, err)
	}
	return requireAffected(res, id)
}

// Resolve marks an alert as handled, recording an optional note
func (s *Store) Resolve(ctx context.Context, id, note string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET resolved_at = ?, resolution_note = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), note, id)
	if err != nil {
		return fmt.Errorf("resolving alert %s: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alert %s not found", id)
	}
	return nil
}

// SaveReport persists a finished training report under the given ID.
// The full report is stored as JSON alongside queryable summary columns.
func (s *Store) SaveReport(ctx context.Context, id string, report *model.TrainingReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	analyzedAt := report.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, caregiver_name, patient_name, dementia_stage,
			overall_score, grade, violation_count, report_json, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			caregiver_name=excluded.caregiver_name, patient_name=excluded.patient_name,
			dementia_stage=excluded.dementia_stage, overall_score=excluded.overall_score,
			grade=excluded.grade, violation_count=excluded.violation_count,
			report_json=excluded.report_json, analyzed_at=excluded.analyzed_at`,
		id, report.CaregiverName, report.PatientName, string(report.DementiaStage),
		report.OverallScore, report.Grade, len(report.Violations),
		string(data), analyzedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// GetReport returns one stored report by ID, or nil if it does not exist
func (s *Store) GetReport(ctx context.Context, id string) (*model.TrainingReport, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM reports WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying report %s: %w", id, err)
	}

	var report model.TrainingReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("parsing stored report %s: %w", id, err)
	}
	return &report, nil
}

// ReportSummary is one row of the report history listing
type ReportSummary struct {
	ID             string              `json:"id"`
	CaregiverName  string              `json:"caregiver_name,omitempty"`
	PatientName    string              `json:"patient_name,omitempty"`
	DementiaStage  model.TrainingStage `json:"dementia_stage"`
	OverallScore   float64             `json:"overall_score"`
	Grade          string              `json:"grade"`
	ViolationCount int                 `json:"violation_count"`
	AnalyzedAt     time.Time           `json:"analyzed_at"`
}

// ListReports returns report summaries newest-first
func (s *Store) ListReports(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, caregiver_name, patient_name, dementia_stage, overall_score,
			grade, violation_count, analyzed_at
		 FROM reports ORDER BY analyzed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var sum ReportSummary
		var stage, analyzedAt string
		if err := rows.Scan(&sum.ID, &sum.CaregiverName, &sum.PatientName, &stage,
			&sum.OverallScore, &sum.Grade, &sum.ViolationCount, &analyzedAt); err != nil {
			return nil, fmt.Errorf("scanning report summary: %w", err)
		}
		sum.DementiaStage = model.TrainingStage(stage)
		sum.AnalyzedAt, _ = time.Parse(time.RFC3339Nano, analyzedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanAlert
type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(row scanner) (*model.SafetyAlert, error) {
	var alert model.SafetyAlert
	var alertType, severity, createdAt string
	var acknowledgedAt, resolvedAt, resolutionNote sql.NullString

	err := row.Scan(&alert.ID, &alert.PatientID, &alert.ConversationID,
		&alertType, &severity, &alert.Title, &alert.Description,
		&alert.TriggerText, &createdAt, &acknowledgedAt, &resolvedAt, &resolutionNote)
	if err != nil {
		return nil, err
	}

	alert.AlertType = model.AlertType(alertType)
	alert.Severity = model.AlertSeverity(severity)
	alert.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if acknowledgedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, acknowledgedAt.String)
		alert.AcknowledgedAt = &t
	}
	if resolvedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, resolvedAt.String)
		alert.ResolvedAt = &t
	}
	alert.ResolutionNote = resolutionNote.String

	return &alert, nil
}
