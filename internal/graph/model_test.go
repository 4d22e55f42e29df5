package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode_DuplicateIsNoOp(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "App\\User", Name: "User", Type: NodeClass, Methods: []string{"save"}})
	g.AddNode(Node{ID: "App\\User", Name: "User", Type: NodeClass, Methods: []string{"delete"}})

	require.True(t, g.HasNode("App\\User"))
	assert.Equal(t, []string{"save"}, g.Node("App\\User").Methods,
		"the first declaration wins; a later AddNode with the same id must not overwrite it")
	assert.Equal(t, 1, g.NodeCount())
}

func TestAddEdge_RejectsSelfLoop(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "A", TargetID: "A", Type: EdgeMethodCall, Weight: 1})

	assert.Equal(t, 0, g.EdgeCount())
}

func TestAddEdge_RejectsOrphan(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "A", TargetID: "Ghost", Type: EdgeMethodCall, Weight: 1})

	assert.Equal(t, 0, g.EdgeCount())
}

func TestAddEdge_AccumulatesWeightOnRepeat(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddNode(Node{ID: "B", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})

	require.Equal(t, 1, g.EdgeCount())
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, 2, edges[0].Weight)
}

func TestAddEdge_SamePairDifferentTypesBothSurvive(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddNode(Node{ID: "B", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeInstantiation, Weight: 1})

	assert.Equal(t, 2, g.EdgeCount(), "distinct edge types between the same pair must coexist as distinct records")
}

func TestNodesAndEdges_SortedOrder(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "C", Type: NodeClass})
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddNode(Node{ID: "B", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "C", TargetID: "A", Type: EdgeMethodCall, Weight: 1})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{nodes[0].ID, nodes[1].ID, nodes[2].ID})

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "A", edges[0].SourceID)
	assert.Equal(t, "C", edges[1].SourceID)
}
