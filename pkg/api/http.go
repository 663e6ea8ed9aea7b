// Package api exposes the HTTP surface of the triage service.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"triagedesk/pkg/feedback"
	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
	"triagedesk/pkg/utils"
)

// Submitter is the intake surface the API depends on.
type Submitter interface {
	Submit(ctx context.Context, req *models.QueryRequest) models.TicketResult
	QueueDepth() int
}

// Server holds handler dependencies.
type Server struct {
	intake   Submitter
	analyzer *feedback.Analyzer
	version  string
}

// NewServer builds a Server. analyzer may be nil when feedback analysis
// is not configured.
func NewServer(intake Submitter, analyzer *feedback.Analyzer, version string) *Server {
	return &Server{intake: intake, analyzer: analyzer, version: version}
}

// Register attaches all routes to r.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/process_query", s.processQuery).Methods(http.MethodPost)
	r.HandleFunc("/feedback", s.handleFeedback).Methods(http.MethodPost)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.readyz).Methods(http.MethodGet)
}

// processQuery accepts a customer query, blocks on the intake pipeline
// and returns the ticket result. The response is always 200 with a
// data-level success flag, matching the submit contract.
func (s *Server) processQuery(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONWrite(w, http.StatusBadRequest, models.Failure("Invalid JSON format"))
		return
	}

	res := s.intake.Submit(r.Context(), &req)
	if !res.Success {
		logger.Info("query_rejected", "query_id", req.QueryID, "message", res.Message)
	}
	utils.JSONWrite(w, http.StatusOK, res)
}

// handleFeedback runs feedback analysis synchronously; it does not go
// through the intake queue.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var fb models.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		utils.JSONWrite(w, http.StatusBadRequest, models.Failure("Invalid JSON"))
		return
	}
	if s.analyzer == nil {
		utils.JSONError(w, http.StatusServiceUnavailable, "feedback analysis not configured")
		return
	}
	analysis, err := s.analyzer.Analyze(r.Context(), fb)
	if err != nil {
		logger.Error("feedback_analysis_failed", "feedback_id", fb.ID, "error", err)
		utils.JSONWrite(w, http.StatusInternalServerError, models.Failure(err.Error()))
		return
	}
	utils.JSONWrite(w, http.StatusOK, analysis)
}

// health reports liveness plus the current queue depth.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	utils.JSONWrite(w, http.StatusOK, map[string]any{
		"status":     "running",
		"queue_size": s.intake.QueueDepth(),
	})
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// readyz includes the running version so ops can verify what binary is
// active.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ver := s.version
	if ver == "" {
		ver = "dev"
	}
	utils.JSONWrite(w, http.StatusOK, map[string]string{"status": "ok", "version": ver})
}
