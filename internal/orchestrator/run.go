// Package orchestrator sequences one analysis run end to end: scan the
// source tree, extract structural declarations from every file, assemble
// them into a graph, project the structural edge subset, compute the
// metric matrix, serialize it, and hand everything to a store.Repository.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/strata/internal/graph"
	"github.com/dusk-indust/strata/internal/store"
)

// RunFailureError wraps an unexpected error that aborted a run after
// CreateRun succeeded. The orchestrator marks the run failed in the
// repository before returning this.
type RunFailureError struct {
	RunID string
	Cause error
}

func (e *RunFailureError) Error() string {
	return fmt.Sprintf("run %s failed: %v", e.RunID, e.Cause)
}

func (e *RunFailureError) Unwrap() error { return e.Cause }

// RunSummary is the outcome of a completed analysis run.
type RunSummary struct {
	RunID   string `json:"run_id"`
	Files   int    `json:"files"`
	Classes int    `json:"classes"`
	Edges   int    `json:"edges"`
}

// Options configures one analysis run.
type Options struct {
	Root        string
	ProjectName string
	Extension   string
	MaxFiles    int
	Timeout     time.Duration
}

// Run executes one full analysis pass against opts.Root and persists the
// result via repo, returning a summary. Every stage after CreateRun that
// fails unexpectedly is wrapped in a *RunFailureError and the run is
// marked failed before the error is returned; per-file read/parse errors
// are swallowed and do not fail the run.
func Run(ctx context.Context, repo store.Repository, opts Options) (*RunSummary, error) {
	runID, err := repo.CreateRun(ctx, opts.ProjectName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: create run: %w", err)
	}

	summary, err := runSteps(ctx, repo, runID, opts)
	if err != nil {
		wrapped := &RunFailureError{RunID: runID, Cause: err}
		if markErr := repo.MarkFailed(ctx, runID, err); markErr != nil {
			return nil, fmt.Errorf("%w (and mark-failed also errored: %v)", wrapped, markErr)
		}
		return nil, wrapped
	}
	return summary, nil
}

func runSteps(ctx context.Context, repo store.Repository, runID string, opts Options) (*RunSummary, error) {
	files, err := graph.Scan(opts.Root, graph.ScanOptions{Extension: opts.Extension, MaxFiles: opts.MaxFiles})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	resolver := graph.NewResolver(opts.Root)
	results := extractAll(ctx, files, resolver)

	g := graph.New()
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, n := range res.Nodes {
			g.AddNode(n)
		}
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, e := range res.Edges {
			g.AddEdge(e)
		}
	}

	totalFiles := len(files)
	totalClasses := g.ClassCount()
	totalEdges := g.EdgeCount()

	projected := graph.StructuralProjection(g)
	calc := graph.NewCalculator(projected)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = graph.DefaultMetricTimeout
	}
	matrix, err := calc.CalculateAll(ctx, timeout)
	if err != nil {
		return nil, fmt.Errorf("calculate metrics: %w", err)
	}

	rows := make([]store.ComponentMetricsRow, 0, len(matrix))
	for _, n := range g.Nodes() {
		m, ok := matrix[n.ID]
		if !ok {
			continue
		}
		rows = append(rows, store.ComponentMetricsRow{
			RunID:             runID,
			NodeID:            n.ID,
			Name:              n.Name,
			Namespace:         n.Namespace,
			Type:              n.Type,
			ComponentMetrics: m,
		})
	}
	if err := repo.SaveComponentMetrics(ctx, runID, rows); err != nil {
		return nil, fmt.Errorf("save component metrics: %w", err)
	}

	payload, err := g.CanonicalJSON()
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	if _, err := repo.SaveGraphJSON(ctx, runID, payload); err != nil {
		return nil, fmt.Errorf("save graph json: %w", err)
	}

	if err := repo.UpdateTotals(ctx, runID, totalFiles, totalClasses, totalEdges); err != nil {
		return nil, fmt.Errorf("update totals: %w", err)
	}
	if err := repo.MarkCompleted(ctx, runID); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	return &RunSummary{RunID: runID, Files: totalFiles, Classes: totalClasses, Edges: totalEdges}, nil
}

// extractAll runs graph.ExtractFile over every file behind a bounded
// errgroup, one goroutine per file up to GOMAXPROCS. Each result is
// written into its own pre-sized slot, indexed by the file's position in
// the scanner's deterministic order, so the subsequent merge into the
// graph store always proceeds in that same order regardless of which
// goroutine happens to finish first. A per-file error (bad read, malformed
// content) is logged into the slot as nil and does not abort the group —
// only an unrecoverable error would do that, and extraction has none.
func extractAll(ctx context.Context, files []string, resolver *graph.Resolver) []*graph.ExtractResult {
	results := make([]*graph.ExtractResult, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			res, err := graph.ExtractFile(path, resolver)
			if err != nil {
				// swallowed: FileReadError/ParseInconsistencyError do not
				// abort the run, they just contribute nothing for this file.
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
