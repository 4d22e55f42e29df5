//go:build cgo

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/strata/internal/graph"
)

// Compile-time assertion: *KuzuRepository satisfies Repository.
var _ Repository = (*KuzuRepository)(nil)

// KuzuRepository implements Repository using an embedded KuzuDB database.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuRepository struct {
	db      *kuzu.Database
	conn    *kuzu.Connection
	dataDir string
}

var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Run(
		run_id STRING,
		project_name STRING,
		status STRING,
		file_count INT64,
		class_count INT64,
		edge_count INT64,
		started_at STRING,
		completed_at STRING,
		error STRING,
		PRIMARY KEY(run_id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS ComponentMetric(
		id STRING,
		run_id STRING,
		node_id STRING,
		name STRING,
		namespace STRING,
		type STRING,
		in_degree INT64,
		out_degree INT64,
		total_degree INT64,
		weighted_in INT64,
		weighted_out INT64,
		betweenness DOUBLE,
		closeness DOUBLE,
		scc_id INT64,
		scc_size INT64,
		blast_radius INT64,
		fan_in_ratio DOUBLE,
		fan_out_ratio DOUBLE,
		scc_density DOUBLE,
		reachability_ratio DOUBLE,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS PRODUCED(FROM Run TO ComponentMetric)`,
}

// NewKuzuFileRepository opens (creating if absent) a KuzuDB database at
// dbPath and returns a KuzuRepository backed by it. Archived graph JSON is
// written under dataDir, same as MemRepository.
func NewKuzuFileRepository(dbPath, dataDir string) (*KuzuRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open kuzu database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open kuzu connection: %w", err)
	}
	r := &KuzuRepository{db: db, conn: conn, dataDir: dataDir}
	if err := r.initSchema(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *KuzuRepository) initSchema() error {
	for _, stmt := range ddlStatements {
		res, err := r.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

func (r *KuzuRepository) CreateRun(_ context.Context, projectName string) (string, error) {
	runID := uuid.NewString()
	err := r.exec(
		`CREATE (r:Run {
			run_id: $id, project_name: $name, status: $status,
			file_count: 0, class_count: 0, edge_count: 0,
			started_at: $started, completed_at: '', error: ''
		})`,
		map[string]any{
			"id":      runID,
			"name":    projectName,
			"status":  string(RunRunning),
			"started": time.Now().UTC().Format(time.RFC3339),
		},
	)
	if err != nil {
		return "", err
	}
	return runID, nil
}

func (r *KuzuRepository) UpdateTotals(_ context.Context, runID string, files, classes, edges int) error {
	return r.exec(
		`MATCH (r:Run {run_id: $id})
		 SET r.file_count = $files, r.class_count = $classes, r.edge_count = $edges`,
		map[string]any{
			"id":      runID,
			"files":   int64(files),
			"classes": int64(classes),
			"edges":   int64(edges),
		},
	)
}

func (r *KuzuRepository) MarkCompleted(_ context.Context, runID string) error {
	return r.exec(
		`MATCH (r:Run {run_id: $id})
		 SET r.status = $status, r.completed_at = $completed`,
		map[string]any{
			"id":        runID,
			"status":    string(RunCompleted),
			"completed": time.Now().UTC().Format(time.RFC3339),
		},
	)
}

func (r *KuzuRepository) MarkFailed(_ context.Context, runID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return r.exec(
		`MATCH (r:Run {run_id: $id})
		 SET r.status = $status, r.completed_at = $completed, r.error = $err`,
		map[string]any{
			"id":        runID,
			"status":    string(RunFailed),
			"completed": time.Now().UTC().Format(time.RFC3339),
			"err":       msg,
		},
	)
}

func (r *KuzuRepository) SaveGraphJSON(_ context.Context, runID string, data []byte) (string, error) {
	if r.dataDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("store: create data dir: %w", err)
	}
	path := filepath.Join(r.dataDir, fmt.Sprintf("graph_%s.json", runID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write graph json: %w", err)
	}
	return path, nil
}

func (r *KuzuRepository) SaveComponentMetrics(_ context.Context, runID string, rows []ComponentMetricsRow) error {
	for _, row := range rows {
		err := r.exec(
			`CREATE (c:ComponentMetric {
				id: $id, run_id: $runID, node_id: $nodeID, name: $name, namespace: $namespace, type: $type,
				in_degree: $inDeg, out_degree: $outDeg, total_degree: $totalDeg,
				weighted_in: $wIn, weighted_out: $wOut,
				betweenness: $betweenness, closeness: $closeness,
				scc_id: $sccID, scc_size: $sccSize, blast_radius: $blast,
				fan_in_ratio: $fanIn, fan_out_ratio: $fanOut,
				scc_density: $sccDensity, reachability_ratio: $reach
			})`,
			map[string]any{
				"id":          runID + ":" + row.NodeID,
				"runID":       runID,
				"nodeID":      row.NodeID,
				"name":        row.Name,
				"namespace":   row.Namespace,
				"type":        string(row.Type),
				"inDeg":       int64(row.InDegree),
				"outDeg":      int64(row.OutDegree),
				"totalDeg":    int64(row.TotalDegree),
				"wIn":         int64(row.WeightedIn),
				"wOut":        int64(row.WeightedOut),
				"betweenness": row.Betweenness,
				"closeness":   row.Closeness,
				"sccID":       int64(row.SCCID),
				"sccSize":     int64(row.SCCSize),
				"blast":       int64(row.BlastRadius),
				"fanIn":       row.FanInRatio,
				"fanOut":      row.FanOutRatio,
				"sccDensity":  row.SCCDensity,
				"reach":       row.ReachabilityRatio,
			},
		)
		if err != nil {
			return err
		}
		if err := r.exec(
			`MATCH (r:Run {run_id: $runID}), (c:ComponentMetric {id: $id})
			 CREATE (r)-[:PRODUCED]->(c)`,
			map[string]any{"runID": runID, "id": runID + ":" + row.NodeID},
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *KuzuRepository) GetRun(_ context.Context, runID string) (*RunRecord, error) {
	rows, err := r.query(
		`MATCH (r:Run {run_id: $id})
		 RETURN r.run_id, r.project_name, r.status, r.file_count, r.class_count,
		        r.edge_count, r.started_at, r.completed_at, r.error`,
		map[string]any{"id": runID},
	)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	row := rows[0]
	rec := &RunRecord{
		RunID:       toString(row[0]),
		ProjectName: toString(row[1]),
		Status:      RunStatus(toString(row[2])),
		FileCount:   toInt(row[3]),
		ClassCount:  toInt(row[4]),
		EdgeCount:   toInt(row[5]),
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339, toString(row[6]))
	rec.CompletedAt, _ = time.Parse(time.RFC3339, toString(row[7]))
	rec.Error = toString(row[8])
	return rec, nil
}

func (r *KuzuRepository) GetComponentMetrics(_ context.Context, runID string) ([]ComponentMetricsRow, error) {
	rows, err := r.query(
		`MATCH (c:ComponentMetric {run_id: $runID})
		 RETURN c.node_id, c.name, c.namespace, c.type,
		        c.in_degree, c.out_degree, c.total_degree, c.weighted_in, c.weighted_out,
		        c.betweenness, c.closeness, c.scc_id, c.scc_size, c.blast_radius,
		        c.fan_in_ratio, c.fan_out_ratio, c.scc_density, c.reachability_ratio`,
		map[string]any{"runID": runID},
	)
	if err != nil {
		return nil, err
	}
	out := make([]ComponentMetricsRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToComponentMetrics(runID, row))
	}
	return out, nil
}

func (r *KuzuRepository) Ping(_ context.Context) error {
	res, err := r.conn.Query("RETURN 1")
	if err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	res.Close()
	return nil
}

func (r *KuzuRepository) Close() error {
	if r.conn != nil {
		r.conn.Close()
	}
	if r.db != nil {
		r.db.Close()
	}
	return nil
}

// ---------- Internal helpers ----------

func (r *KuzuRepository) exec(cypher string, params map[string]any) error {
	stmt, err := r.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := r.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("store: execute: %w", err)
	}
	res.Close()
	return nil
}

func (r *KuzuRepository) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error
	if len(params) == 0 {
		res, err = r.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = r.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("store: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = r.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("store: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("store: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// rowToComponentMetrics converts a result row in the column order used by
// GetComponentMetrics's query into a ComponentMetricsRow.
func rowToComponentMetrics(runID string, r []any) ComponentMetricsRow {
	return ComponentMetricsRow{
		RunID:     runID,
		NodeID:    toString(r[0]),
		Name:      toString(r[1]),
		Namespace: toString(r[2]),
		Type:      graph.NodeType(toString(r[3])),
		ComponentMetrics: graph.ComponentMetrics{
			InDegree:          toInt(r[4]),
			OutDegree:         toInt(r[5]),
			TotalDegree:       toInt(r[6]),
			WeightedIn:        toInt(r[7]),
			WeightedOut:       toInt(r[8]),
			Betweenness:       toFloat64(r[9]),
			Closeness:         toFloat64(r[10]),
			SCCID:             toInt(r[11]),
			SCCSize:           toInt(r[12]),
			BlastRadius:       toInt(r[13]),
			FanInRatio:        toFloat64(r[14]),
			FanOutRatio:       toFloat64(r[15]),
			SCCDensity:        toFloat64(r[16]),
			ReachabilityRatio: toFloat64(r[17]),
		},
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
