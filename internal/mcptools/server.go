// Package mcptools exposes the analysis engine to Model Context Protocol
// clients: analyze_project and get_metrics mirror the HTTP surface's
// POST /analyze and GET /metrics/{run_id} one for one, so a coding agent
// can trigger a run and read back the metrics matrix without an HTTP
// round trip.
package mcptools

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/strata/internal/orchestrator"
	"github.com/dusk-indust/strata/internal/store"
)

// version is set by the linker at build time.
var version = "dev"

// Service holds the collaborators MCP tool handlers call into.
type Service struct {
	repo      store.Repository
	extension string
	maxFiles  int
	timeout   time.Duration
}

// NewService returns a Service backed by repo, using extension/maxFiles/
// timeout for every analyze_project call the same way cmd/strata's
// `analyze` subcommand and internal/api configure a run.
func NewService(repo store.Repository, extension string, maxFiles int, timeout time.Duration) *Service {
	return &Service{repo: repo, extension: extension, maxFiles: maxFiles, timeout: timeout}
}

// AnalyzeProjectInput is the input for the analyze_project MCP tool.
type AnalyzeProjectInput struct {
	ProjectPath string `json:"projectPath" jsonschema:"the absolute path to the PHP project to analyze"`
	ProjectName string `json:"projectName,omitempty" jsonschema:"a display name recorded with the run"`
}

// AnalyzeProjectOutput is the result of the analyze_project MCP tool.
type AnalyzeProjectOutput struct {
	RunID   string `json:"runId"`
	Files   int    `json:"files"`
	Classes int    `json:"classes"`
	Edges   int    `json:"edges"`
}

// AnalyzeProject runs a full structural analysis pass and returns its summary.
func (s *Service) AnalyzeProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeProjectInput,
) (*mcp.CallToolResult, AnalyzeProjectOutput, error) {
	if input.ProjectPath == "" {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("projectPath is required")
	}

	summary, err := orchestrator.Run(ctx, s.repo, orchestrator.Options{
		Root:        input.ProjectPath,
		ProjectName: input.ProjectName,
		Extension:   s.extension,
		MaxFiles:    s.maxFiles,
		Timeout:     s.timeout,
	})
	if err != nil {
		return nil, AnalyzeProjectOutput{}, err
	}

	return nil, AnalyzeProjectOutput{
		RunID:   summary.RunID,
		Files:   summary.Files,
		Classes: summary.Classes,
		Edges:   summary.Edges,
	}, nil
}

// GetMetricsInput is the input for the get_metrics MCP tool.
type GetMetricsInput struct {
	RunID string `json:"runId" jsonschema:"the run id returned by analyze_project"`
}

// GetMetricsOutput is the result of the get_metrics MCP tool.
type GetMetricsOutput struct {
	RunID      string                      `json:"runId"`
	Components []store.ComponentMetricsRow `json:"components"`
}

// GetMetrics returns the metric matrix saved for a prior run.
func (s *Service) GetMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetMetricsInput,
) (*mcp.CallToolResult, GetMetricsOutput, error) {
	if input.RunID == "" {
		return nil, GetMetricsOutput{}, fmt.Errorf("runId is required")
	}

	rows, err := s.repo.GetComponentMetrics(ctx, input.RunID)
	if err != nil {
		return nil, GetMetricsOutput{}, err
	}
	if rows == nil {
		return nil, GetMetricsOutput{}, fmt.Errorf("unknown run id: %s", input.RunID)
	}

	return nil, GetMetricsOutput{RunID: input.RunID, Components: rows}, nil
}

// NewServer creates an MCP server with both structural-analysis tools
// registered.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "strata",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_project",
		Description: "Run a structural analysis pass over a PHP project: scan the source tree, extract classes/interfaces/traits and their relationships, compute the dependency graph's metric matrix, and persist the result.",
	}, svc.AnalyzeProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metrics",
		Description: "Return the per-component metric matrix (degree, betweenness, closeness, SCC membership, blast radius) saved for a prior analyze_project run.",
	}, svc.GetMetrics)

	return server
}

// RunMCPServer starts an HTTP server exposing the MCP tools, shutting down
// gracefully when ctx is canceled.
func RunMCPServer(ctx context.Context, svc *Service, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
