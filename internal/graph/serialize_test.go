package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON_NodesAndLinksSorted(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "C", Name: "C", Type: NodeClass})
	g.AddNode(Node{ID: "A", Name: "A", Type: NodeClass})
	g.AddNode(Node{ID: "B", Name: "B", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "C", TargetID: "A", Type: EdgeMethodCall, Weight: 1})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})

	raw, err := g.CanonicalJSON()
	require.NoError(t, err)

	var doc jsonGraph
	require.NoError(t, json.Unmarshal(raw, &doc))

	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{doc.Nodes[0].ID, doc.Nodes[1].ID, doc.Nodes[2].ID})

	require.Len(t, doc.Links, 2)
	assert.Equal(t, "A", doc.Links[0].Source)
	assert.Equal(t, "C", doc.Links[1].Source)
}

func TestCanonicalJSON_NilMethodsNormalizedToEmptyArray(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Name: "A", Type: NodeClass})

	raw, err := g.CanonicalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"methods": []`)
}

func TestCanonicalJSON_StableAcrossRepeatedCalls(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "A", Type: NodeClass})
	g.AddNode(Node{ID: "B", Type: NodeClass})
	g.AddEdge(Edge{SourceID: "A", TargetID: "B", Type: EdgeMethodCall, Weight: 1})

	first, err := g.CanonicalJSON()
	require.NoError(t, err)
	second, err := g.CanonicalJSON()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
