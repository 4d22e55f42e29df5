// Package export renders a structural graph as a Graphviz DOT or Mermaid
// diagram, for the CLI export subcommand and any dashboard that wants a
// renderable view of a run's dependency graph.
package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/strata/internal/graph"
)

var nodeFillColor = map[graph.NodeType]string{
	graph.NodeClass:     "#bfe3ff",
	graph.NodeInterface: "#c9f7c5",
	graph.NodeTrait:     "#fff3b0",
	graph.NodeMethod:    "#e8e8e8",
	graph.NodeUnknown:   "#f0f0f0",
}

var edgeStyle = map[graph.EdgeType]string{
	graph.EdgeInherits:      `color="#1a73e8", style=bold`,
	graph.EdgeImplements:    `color="#34a853", style=dashed`,
	graph.EdgeUsesTrait:     `color="#fbbc04"`,
	graph.EdgeInstantiation: `color="#9334e6"`,
	graph.EdgeMethodCall:    `color="#5f6368"`,
	graph.EdgeDependsOn:     `color="#80868b", style=dotted`,
}

// DOT renders g as a Graphviz digraph: one box node per declared component,
// colored by type, and one styled arrow per edge type.
func DOT(g *graph.Graph) string {
	var sb strings.Builder

	sb.WriteString("digraph Structure {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=filled];\n\n")

	for _, n := range g.Nodes() {
		color := nodeFillColor[n.Type]
		if color == "" {
			color = nodeFillColor[graph.NodeUnknown]
		}
		label := escapeLabel(n.Name)
		sb.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q];\n", n.ID, label, color))
	}

	sb.WriteString("\n")
	for _, e := range g.Edges() {
		style := edgeStyle[e.Type]
		if style == "" {
			style = `color="#000000"`
		}
		sb.WriteString(fmt.Sprintf("  %q -> %q [%s, label=%q];\n", e.SourceID, e.TargetID, style, string(e.Type)))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
