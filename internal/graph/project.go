package graph

// Project returns an independent subgraph containing only nodes whose Type
// is in nodeTypes and edges whose Type is in edgeTypes. A nil or empty
// filter keeps everything for that dimension. The result shares no storage
// with g — it is built from AddNode/AddEdge, the same way a fresh Graph is
// always built, so mutating the projection can never corrupt the parent.
//
// Edges are subgraph-induced: an edge survives the type filter only if both
// its endpoints also survived the node filter, matching the
// filter-then-induce order of the original projection ("filter nodes
// first... build subgraph on kept nodes... then filter edges by type").
func Project(g *Graph, nodeTypes map[NodeType]bool, edgeTypes map[EdgeType]bool) *Graph {
	out := New()

	keepNode := func(t NodeType) bool {
		if len(nodeTypes) == 0 {
			return true
		}
		return nodeTypes[t]
	}
	keepEdge := func(t EdgeType) bool {
		if len(edgeTypes) == 0 {
			return true
		}
		return edgeTypes[t]
	}

	for _, n := range g.Nodes() {
		if keepNode(n.Type) {
			out.AddNode(*n)
		}
	}
	for _, e := range g.Edges() {
		if !keepEdge(e.Type) {
			continue
		}
		if !out.HasNode(e.SourceID) || !out.HasNode(e.TargetID) {
			continue
		}
		out.AddEdge(*e)
	}
	return out
}

// StructuralProjection applies the default architectural-centrality view:
// every node type, but only StructuralEdgeTypes edges.
func StructuralProjection(g *Graph) *Graph {
	return Project(g, nil, StructuralEdgeTypes)
}
