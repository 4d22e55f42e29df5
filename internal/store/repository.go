// Package store persists analysis run bookkeeping, per-node metric rows,
// and archived graph JSON on behalf of internal/orchestrator. The core
// graph and metric engine in internal/graph never depend on this package —
// Repository is a collaborator the orchestrator calls after computing a
// result, not a storage layer the engine itself reaches into.
package store

import (
	"context"
	"time"

	"github.com/dusk-indust/strata/internal/graph"
)

// RunStatus is a run's lifecycle state.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord is the repository's bookkeeping row for one analysis run.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	ProjectName string    `json:"project_name"`
	Status      RunStatus `json:"status"`
	FileCount   int       `json:"file_count"`
	ClassCount  int       `json:"class_count"`
	EdgeCount   int       `json:"edge_count"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Error       string    `json:"error,omitempty"`
}

// ComponentMetricsRow is one flattened record per node: identity fields
// from graph.Node plus every graph.ComponentMetrics field. This is the unit
// SaveComponentMetrics persists and GET /metrics/{run_id} returns.
type ComponentMetricsRow struct {
	RunID     string         `json:"run_id"`
	NodeID    string         `json:"node_id"`
	Name      string         `json:"name"`
	Namespace string         `json:"namespace"`
	Type      graph.NodeType `json:"type"`
	graph.ComponentMetrics
}

// Repository is the persistence collaborator the run orchestrator calls
// after each stage of an analysis run completes.
type Repository interface {
	CreateRun(ctx context.Context, projectName string) (runID string, err error)
	UpdateTotals(ctx context.Context, runID string, files, classes, edges int) error
	MarkCompleted(ctx context.Context, runID string) error
	MarkFailed(ctx context.Context, runID string, cause error) error
	SaveGraphJSON(ctx context.Context, runID string, data []byte) (path string, err error)
	SaveComponentMetrics(ctx context.Context, runID string, rows []ComponentMetricsRow) error

	// GetRun returns the bookkeeping row for runID, or nil if unknown.
	GetRun(ctx context.Context, runID string) (*RunRecord, error)
	// GetComponentMetrics returns every row saved for runID.
	GetComponentMetrics(ctx context.Context, runID string) ([]ComponentMetricsRow, error)
	// Ping reports whether the backing store is reachable, for health checks.
	Ping(ctx context.Context) error
	// Close releases any resources held by the repository.
	Close() error
}
