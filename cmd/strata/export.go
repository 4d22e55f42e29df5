package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/strata/internal/export"
	"github.com/dusk-indust/strata/internal/graph"
)

// archivedGraph mirrors the canonical {"nodes": [...], "links": [...]}
// document produced by (*graph.Graph).CanonicalJSON, so a previously
// archived graph_<run_id>.json can be reloaded without re-running analysis.
type archivedGraph struct {
	Nodes []archivedNode `json:"nodes"`
	Links []archivedLink `json:"links"`
}

type archivedNode struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Namespace string          `json:"namespace"`
	Type      graph.NodeType  `json:"type"`
	FilePath  string          `json:"file_path"`
	Methods   []string        `json:"methods"`
}

type archivedLink struct {
	Source string        `json:"source"`
	Target string        `json:"target"`
	Type   graph.EdgeType `json:"type"`
	Weight int           `json:"weight"`
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	graphPath := fs.String("graph", "", "path to a graph_<run_id>.json file")
	format := fs.String("format", "mermaid", "output format: mermaid or dot")

	if help, err := parseFlagSet(fs, args); help || err != nil {
		return err
	}
	if *graphPath == "" {
		return fmt.Errorf("--graph is required")
	}

	data, err := os.ReadFile(*graphPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *graphPath, err)
	}

	var doc archivedGraph
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", *graphPath, err)
	}

	g := graph.New()
	for _, n := range doc.Nodes {
		g.AddNode(graph.Node{
			ID:        n.ID,
			Name:      n.Name,
			Namespace: n.Namespace,
			Type:      n.Type,
			FilePath:  n.FilePath,
			Methods:   n.Methods,
		})
	}
	for _, l := range doc.Links {
		g.AddEdge(graph.Edge{SourceID: l.Source, TargetID: l.Target, Type: l.Type, Weight: l.Weight})
	}

	switch *format {
	case "mermaid":
		fmt.Println(export.Mermaid(g))
	case "dot":
		fmt.Println(export.DOT(g))
	default:
		return fmt.Errorf("unknown format %q (want mermaid or dot)", *format)
	}
	return nil
}
