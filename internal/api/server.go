// Package api exposes the analyzer and safety tools over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ehiller1/dementia/internal/alert"
	"github.com/ehiller1/dementia/internal/analyze"
	"github.com/ehiller1/dementia/internal/cache"
	"github.com/ehiller1/dementia/internal/model"
	"github.com/ehiller1/dementia/internal/safety"
)

// Server serves training analysis and safety endpoints
type Server struct {
	router     *chi.Mux
	port       int
	logger     *slog.Logger
	analyzer   *analyze.Analyzer
	classifier *safety.Classifier
	monitor    *safety.Monitor
	store      *alert.Store
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewServer creates the HTTP server. Monitor and store may be nil; the
// corresponding endpoints then return 503.
func NewServer(cfg *model.Config, analyzer *analyze.Analyzer, monitor *safety.Monitor, store *alert.Store, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       cfg.Server.Port,
		logger:     logger,
		analyzer:   analyzer,
		classifier: safety.NewClassifier(),
		monitor:    monitor,
		store:      store,
	}

	if cfg.Cache.Enabled {
		s.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		s.cacheTTL = cfg.Cache.TTL
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/philosophy", s.philosophy)

	router.Post("/api/v1/training/analyze", s.analyzeTranscript)

	router.Post("/api/v1/safety/assess", s.assess)
	router.Post("/api/v1/safety/monitor", s.monitorMessage)

	router.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", s.listAlerts)
		r.Post("/{id}/acknowledge", s.acknowledgeAlert)
		r.Post("/{id}/resolve", s.resolveAlert)
	})

	router.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/", s.listReports)
		r.Get("/{id}", s.getReport)
	})

	return s
}

// Start blocks serving HTTP
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) philosophy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ethos":          model.Ethos,
		"ideal_minutes":  model.IdealSessionMinutes,
		"session_phases": model.IdealSession(),
	})
}

// AnalyzeRequest is the payload for POST /api/v1/training/analyze
type AnalyzeRequest struct {
	Transcript    string `json:"transcript"`
	CaregiverName string `json:"caregiver_name"`
	PatientName   string `json:"patient_name"`
	Stage         string `json:"stage"`
}

// AnalyzeResponse wraps the produced report
type AnalyzeResponse struct {
	ReportID string                `json:"report_id,omitempty"`
	Cached   bool                  `json:"cached"`
	Report   *model.TrainingReport `json:"report"`
}

func (s *Server) analyzeTranscript(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Transcript == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	key := cache.ReportKey(req.Transcript, req.CaregiverName, req.PatientName, req.Stage)
	if s.cache != nil {
		if data, found := s.cache.Get(key); found {
			var resp AnalyzeResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				resp.Cached = true
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	report, err := s.analyzer.AnalyzeSession(r.Context(), analyze.Request{
		Transcript:    req.Transcript,
		CaregiverName: req.CaregiverName,
		PatientName:   req.PatientName,
		Stage:         model.ParseTrainingStage(req.Stage),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
		return
	}

	resp := AnalyzeResponse{Report: report}

	if s.store != nil {
		resp.ReportID = uuid.NewString()
		if err := s.store.SaveReport(r.Context(), resp.ReportID, report); err != nil {
			s.logger.Warn("report not persisted", "error", err)
			resp.ReportID = ""
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(key, data, s.cacheTTL)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// AssessRequest is the payload for POST /api/v1/safety/assess
type AssessRequest struct {
	Message string `json:"message"`
}

// AssessResponse pairs the tier assessment with the confusion flag
type AssessResponse struct {
	Assessment model.SafetyAssessment `json:"assessment"`
	Confusion  bool                   `json:"confusion"`
}

func (s *Server) assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, AssessResponse{
		Assessment: s.classifier.Assess(req.Message),
		Confusion:  safety.DetectConfusion(req.Message),
	})
}

// MonitorRequest is the payload for POST /api/v1/safety/monitor
type MonitorRequest struct {
	PatientID      int64  `json:"patient_id"`
	ConversationID int64  `json:"conversation_id"`
	Message        string `json:"message"`
}

func (s *Server) monitorMessage(w http.ResponseWriter, r *http.Request) {
	if s.monitor == nil {
		writeError(w, http.StatusServiceUnavailable, "safety monitor not configured")
		return
	}

	var req MonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	result, err := s.monitor.CheckMessage(r.Context(), req.PatientID, req.ConversationID, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("monitor failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "alert store not configured")
		return
	}

	opts := alert.ListOptions{
		UnresolvedOnly: r.URL.Query().Get("unresolved") == "true",
	}
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		if _, err := fmt.Sscanf(patientID, "%d", &opts.PatientID); err != nil {
			writeError(w, http.StatusBadRequest, "invalid patient_id")
			return
		}
	}

	alerts, err := s.store.ListAlerts(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list alerts: %v", err))
		return
	}
	if alerts == nil {
		alerts = []*model.SafetyAlert{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts, "count": len(alerts)})
}

func (s *Server) acknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "alert store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.Acknowledge(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

// ResolveRequest carries the optional resolution note
type ResolveRequest struct {
	Note string `json:"note"`
}

func (s *Server) resolveAlert(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "alert store not configured")
		return
	}

	var req ResolveRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	id := chi.URLParam(r, "id")
	if err := s.store.Resolve(r.Context(), id, req.Note); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "report store not configured")
		return
	}

	summaries, err := s.store.ListReports(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list reports: %v", err))
		return
	}
	if summaries == nil {
		summaries = []alert.ReportSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"reports": summaries, "count": len(summaries)})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "report store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("get report: %v", err))
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("report %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
