package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehiller1/dementia/internal/alert"
	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/model"
	"github.com/ehiller1/dementia/internal/safety"
)

func newTestServer(t *testing.T) (*Server, *alert.Store) {
	t.Helper()

	cfg := model.DefaultConfig()
	analyzer, err := analyze.NewAnalyzer(cfg)
	require.NoError(t, err)

	store, err := alert.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	monitor := safety.NewMonitor(cfg.Safety, store, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewServer(cfg, analyzer, monitor, store, logger), store
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServer_Philosophy(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/api/v1/philosophy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ethos         string               `json:"ethos"`
		IdealMinutes  int                  `json:"ideal_minutes"`
		SessionPhases []model.SessionPhase `json:"session_phases"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.Ethos, resp.Ethos)
	assert.Equal(t, model.IdealSessionMinutes, resp.IdealMinutes)
	assert.Len(t, resp.SessionPhases, 6)
}

func TestServer_Analyze(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", AnalyzeRequest{
		Transcript:    "Sarah: Do you remember what we did yesterday?\nDad: No.",
		CaregiverName: "Sarah",
		PatientName:   "Dad",
		Stage:         "moderate",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Report)
	assert.False(t, resp.Cached)
	assert.NotEmpty(t, resp.ReportID)
	assert.NotEmpty(t, resp.Report.Violations)
	assert.Equal(t, model.StageModerate, resp.Report.DementiaStage)
}

func TestServer_Analyze_CacheHit(t *testing.T) {
	server, _ := newTestServer(t)

	req := AnalyzeRequest{
		Transcript:    "Sarah: Good morning, it's time for our visit.",
		CaregiverName: "Sarah",
	}

	first := doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", req)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", req)
	require.Equal(t, http.StatusOK, second.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestServer_Analyze_BadRequest(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/training/analyze", bytes.NewReader([]byte("{not json")))
	rec2 := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestServer_Assess(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/safety/assess", AssessRequest{
		Message: "I want to kill myself",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AssessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TierCritical, resp.Assessment.Tier)
	assert.Equal(t, model.RiskHigh, resp.Assessment.RiskLevel)
	assert.False(t, resp.Confusion)
}

func TestServer_Monitor_CreatesAlert(t *testing.T) {
	server, store := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/safety/monitor", MonitorRequest{
		PatientID:      7,
		ConversationID: 1,
		Message:        "I want to end it all",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result safety.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Alert)
	assert.True(t, result.Immediate)

	saved, err := store.GetAlert(context.Background(), result.Alert.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, model.AlertCrisis, saved.AlertType)
}

func TestServer_AlertLifecycle(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/safety/monitor", MonitorRequest{
		PatientID: 7,
		Message:   "I fell and I'm scared",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result safety.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Alert)

	listRec := doJSON(t, server, http.MethodGet, "/api/v1/alerts/?unresolved=true", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), result.Alert.ID)

	ackRec := doJSON(t, server, http.MethodPost, "/api/v1/alerts/"+result.Alert.ID+"/acknowledge", nil)
	assert.Equal(t, http.StatusOK, ackRec.Code)

	resolveRec := doJSON(t, server, http.MethodPost,
		"/api/v1/alerts/"+result.Alert.ID+"/resolve", ResolveRequest{Note: "checked in by phone"})
	assert.Equal(t, http.StatusOK, resolveRec.Code)

	afterRec := doJSON(t, server, http.MethodGet, "/api/v1/alerts/?unresolved=true", nil)
	assert.NotContains(t, afterRec.Body.String(), result.Alert.ID)
}

func TestServer_Alerts_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/alerts/missing/acknowledge", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Reports(t *testing.T) {
	server, _ := newTestServer(t)

	analyzeRec := doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", AnalyzeRequest{
		Transcript:    "Sarah: Good morning, it's time for our visit.",
		CaregiverName: "Sarah",
	})
	require.Equal(t, http.StatusOK, analyzeRec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(analyzeRec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ReportID)

	listRec := doJSON(t, server, http.MethodGet, "/api/v1/reports/", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), resp.ReportID)

	getRec := doJSON(t, server, http.MethodGet, "/api/v1/reports/"+resp.ReportID, nil)
	require.Equal(t, http.StatusOK, getRec.Code)

	var report model.TrainingReport
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &report))
	assert.Equal(t, resp.Report.Grade, report.Grade)

	missingRec := doJSON(t, server, http.MethodGet, "/api/v1/reports/missing", nil)
	assert.Equal(t, http.StatusNotFound, missingRec.Code)
}

func TestServer_StoreOptional(t *testing.T) {
	cfg := model.DefaultConfig()
	analyzer, err := analyze.NewAnalyzer(cfg)
	require.NoError(t, err)

	server := NewServer(cfg, analyzer, nil, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := doJSON(t, server, http.MethodPost, "/api/v1/safety/monitor", MonitorRequest{Message: "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/alerts/", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/v1/training/analyze", AnalyzeRequest{
		Transcript: "Sarah: Hello.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.ReportID, "no report ID without a store")
}
