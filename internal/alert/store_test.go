package alert

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehiller1/dementia/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testAlert() *model.SafetyAlert {
	return &model.SafetyAlert{
		ID:             uuid.NewString(),
		PatientID:      7,
		ConversationID: 42,
		AlertType:      model.AlertCrisis,
		Severity:       model.SeverityCritical,
		Title:          "Crisis Language Detected",
		Description:    "Patient used concerning language. Keywords: end it all",
		TriggerText:    "I want to end it all",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestStore_SaveAndGetAlert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alert := testAlert()
	require.NoError(t, store.SaveAlert(ctx, alert))

	got, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, alert.ID, got.ID)
	assert.Equal(t, alert.PatientID, got.PatientID)
	assert.Equal(t, model.AlertCrisis, got.AlertType)
	assert.Equal(t, model.SeverityCritical, got.Severity)
	assert.Equal(t, alert.TriggerText, got.TriggerText)
	assert.Nil(t, got.AcknowledgedAt)
	assert.Nil(t, got.ResolvedAt)
}

func TestStore_GetAlert_NotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetAlert(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListAlerts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testAlert()
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := testAlert()
	second.PatientID = 9
	second.AlertType = model.AlertDistress
	second.Severity = model.SeverityWarning

	require.NoError(t, store.SaveAlert(ctx, first))
	require.NoError(t, store.SaveAlert(ctx, second))

	all, err := store.ListAlerts(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	forPatient, err := store.ListAlerts(ctx, ListOptions{PatientID: 9})
	require.NoError(t, err)
	require.Len(t, forPatient, 1)
	assert.Equal(t, second.ID, forPatient[0].ID)
}

func TestStore_ListAlerts_UnresolvedOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	open := testAlert()
	closed := testAlert()
	require.NoError(t, store.SaveAlert(ctx, open))
	require.NoError(t, store.SaveAlert(ctx, closed))
	require.NoError(t, store.Resolve(ctx, closed.ID, "spoke with patient"))

	unresolved, err := store.ListAlerts(ctx, ListOptions{UnresolvedOnly: true})
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	assert.Equal(t, open.ID, unresolved[0].ID)
}

func TestStore_AcknowledgeAndResolve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alert := testAlert()
	require.NoError(t, store.SaveAlert(ctx, alert))

	require.NoError(t, store.Acknowledge(ctx, alert.ID))
	require.NoError(t, store.Resolve(ctx, alert.ID, "false alarm"))

	got, err := store.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AcknowledgedAt)
	require.NotNil(t, got.ResolvedAt)
	assert.Equal(t, "false alarm", got.ResolutionNote)
}

func TestStore_Acknowledge_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Acknowledge(context.Background(), "missing")
	assert.Error(t, err)
}

func TestStore_SaveAndGetReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &model.TrainingReport{
		OverallScore:  0.87,
		Grade:         "B",
		DementiaStage: model.StageModerate,
		CaregiverName: "Sarah",
		Violations:    []model.Violation{{Type: model.ViolationCorrection, Severity: model.ViolationMedium}},
		AnalyzedAt:    time.Now().UTC(),
	}

	id := uuid.NewString()
	require.NoError(t, store.SaveReport(ctx, id, report))

	got, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.87, got.OverallScore)
	assert.Equal(t, "B", got.Grade)
	assert.Len(t, got.Violations, 1)

	summaries, err := store.ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, id, summaries[0].ID)
	assert.Equal(t, "Sarah", summaries[0].CaregiverName)
	assert.Equal(t, 1, summaries[0].ViolationCount)
}

func TestStore_SaveReport_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := uuid.NewString()
	report := &model.TrainingReport{Grade: "C", DementiaStage: model.StageEarly, AnalyzedAt: time.Now().UTC()}
	require.NoError(t, store.SaveReport(ctx, id, report))

	report.Grade = "B"
	require.NoError(t, store.SaveReport(ctx, id, report))

	summaries, err := store.ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "B", summaries[0].Grade)
}
