package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/strata/internal/graph"
)

var mermaidArrow = map[graph.EdgeType]string{
	graph.EdgeInherits:      "--|>",
	graph.EdgeImplements:    "..|>",
	graph.EdgeUsesTrait:     "-.->",
	graph.EdgeInstantiation: "-->",
	graph.EdgeMethodCall:    "-->",
	graph.EdgeDependsOn:     "-.->",
}

// nodeID mangles a fully-qualified name into a Mermaid-safe identifier:
// backslashes and non-alphanumeric characters confuse Mermaid's parser.
func nodeID(id string) string {
	r := strings.NewReplacer(`\`, "_", ".", "_", "-", "_", "/", "_")
	return "n_" + r.Replace(id)
}

// Mermaid renders g as a Mermaid graph TD diagram, grouping nodes by
// namespace into subgraphs so large dependency trees stay readable.
func Mermaid(g *graph.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	byNamespace := make(map[string][]*graph.Node)
	var namespaces []string
	for _, n := range g.Nodes() {
		ns := n.Namespace
		if _, seen := byNamespace[ns]; !seen {
			namespaces = append(namespaces, ns)
		}
		byNamespace[ns] = append(byNamespace[ns], n)
	}

	for _, ns := range namespaces {
		if ns == "" {
			for _, n := range byNamespace[ns] {
				sb.WriteString(fmt.Sprintf("  %s[%q]\n", nodeID(n.ID), n.Name))
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph %q\n", ns))
		for _, n := range byNamespace[ns] {
			sb.WriteString(fmt.Sprintf("    %s[%q]\n", nodeID(n.ID), n.Name))
		}
		sb.WriteString("  end\n")
	}

	sb.WriteString("\n")
	for _, e := range g.Edges() {
		arrow := mermaidArrow[e.Type]
		if arrow == "" {
			arrow = "-->"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", nodeID(e.SourceID), arrow, nodeID(e.TargetID)))
	}

	return sb.String()
}
