// Package api exposes the analysis engine over HTTP: POST /analyze, GET
// /metrics/{run_id}, and GET /health.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dusk-indust/strata/internal/orchestrator"
	"github.com/dusk-indust/strata/internal/store"
)

const version = "1.0.0"

// Server wires a store.Repository into the HTTP surface.
type Server struct {
	repo    store.Repository
	extension string
	maxFiles  int
	timeout   time.Duration
	http    *http.Server
}

// NewServer returns a Server backed by repo. extension/maxFiles/timeout
// configure every POST /analyze run the same way cmd/strata's `analyze`
// subcommand does.
func NewServer(repo store.Repository, extension string, maxFiles int, timeout time.Duration) *Server {
	return &Server{repo: repo, extension: extension, maxFiles: maxFiles, timeout: timeout}
}

// Start registers routes and begins serving in a background goroutine. It
// returns immediately; call Stop to shut down gracefully.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /metrics/{run_id}", s.handleMetrics)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.http = &http.Server{Addr: addr, Handler: mux}
	go s.http.ListenAndServe()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

type analyzeRequest struct {
	ProjectPath string `json:"project_path"`
	ProjectName string `json:"project_name"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ProjectPath == "" {
		writeError(w, http.StatusBadRequest, "project_path is required")
		return
	}

	summary, err := orchestrator.Run(r.Context(), s.repo, orchestrator.Options{
		Root:        req.ProjectPath,
		ProjectName: req.ProjectName,
		Extension:   s.extension,
		MaxFiles:    s.maxFiles,
		Timeout:     s.timeout,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	json.NewEncoder(w).Encode(summary)
}

type metricsResponse struct {
	RunID      string                       `json:"run_id"`
	Components []store.ComponentMetricsRow `json:"components"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	runID := r.PathValue("run_id")

	rows, err := s.repo.GetComponentMetrics(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		writeError(w, http.StatusNotFound, "unknown run_id: "+runID)
		return
	}

	json.NewEncoder(w).Encode(metricsResponse{RunID: runID, Components: rows})
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	database := "connected"
	if err := s.repo.Ping(r.Context()); err != nil {
		database = "unavailable"
	}

	json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Version:   version,
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
