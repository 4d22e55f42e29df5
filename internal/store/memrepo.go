package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Compile-time assertion: *MemRepository satisfies Repository.
var _ Repository = (*MemRepository)(nil)

// MemRepository implements Repository with in-process maps guarded by a
// mutex. It is the default backend for one-shot CLI runs and for tests —
// no daemon, no external database required.
type MemRepository struct {
	mu        sync.RWMutex
	dataDir   string
	runs      map[string]*RunRecord
	metrics   map[string][]ComponentMetricsRow
	graphJSON map[string][]byte
}

// NewMemRepository returns a MemRepository that writes archived graph JSON
// under dataDir (created on first SaveGraphJSON call).
func NewMemRepository(dataDir string) *MemRepository {
	return &MemRepository{
		dataDir:   dataDir,
		runs:      make(map[string]*RunRecord),
		metrics:   make(map[string][]ComponentMetricsRow),
		graphJSON: make(map[string][]byte),
	}
}

func (m *MemRepository) CreateRun(_ context.Context, projectName string) (string, error) {
	runID := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[runID] = &RunRecord{
		RunID:       runID,
		ProjectName: projectName,
		Status:      RunRunning,
		StartedAt:   time.Now(),
	}
	return runID, nil
}

func (m *MemRepository) UpdateTotals(_ context.Context, runID string, files, classes, edges int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("store: unknown run %q", runID)
	}
	run.FileCount = files
	run.ClassCount = classes
	run.EdgeCount = edges
	return nil
}

func (m *MemRepository) MarkCompleted(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("store: unknown run %q", runID)
	}
	run.Status = RunCompleted
	run.CompletedAt = time.Now()
	return nil
}

func (m *MemRepository) MarkFailed(_ context.Context, runID string, cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("store: unknown run %q", runID)
	}
	run.Status = RunFailed
	run.CompletedAt = time.Now()
	if cause != nil {
		run.Error = cause.Error()
	}
	return nil
}

func (m *MemRepository) SaveGraphJSON(_ context.Context, runID string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := append([]byte(nil), data...)
	m.graphJSON[runID] = cp

	if m.dataDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(m.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("store: create data dir: %w", err)
	}
	path := filepath.Join(m.dataDir, fmt.Sprintf("graph_%s.json", runID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write graph json: %w", err)
	}
	return path, nil
}

func (m *MemRepository) SaveComponentMetrics(_ context.Context, runID string, rows []ComponentMetricsRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]ComponentMetricsRow, len(rows))
	copy(cp, rows)
	m.metrics[runID] = cp
	return nil
}

func (m *MemRepository) GetRun(_ context.Context, runID string) (*RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	cp := *run
	return &cp, nil
}

func (m *MemRepository) GetComponentMetrics(_ context.Context, runID string) ([]ComponentMetricsRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.metrics[runID]
	if !ok {
		return nil, nil
	}
	out := make([]ComponentMetricsRow, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *MemRepository) Ping(_ context.Context) error {
	if m == nil {
		return errors.New("store: nil repository")
	}
	return nil
}

func (m *MemRepository) Close() error { return nil }
