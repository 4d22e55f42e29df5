package graph

import "encoding/json"

// jsonNode and jsonLink are explicit structs, not map[string]any, so that
// encoding/json preserves a fixed key order regardless of Go's randomized
// map iteration — required for byte-identical output across runs.
type jsonNode struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Namespace string   `json:"namespace"`
	Type      NodeType `json:"type"`
	FilePath  string   `json:"file_path"`
	Methods   []string `json:"methods"`
}

type jsonLink struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Weight int      `json:"weight"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Links []jsonLink `json:"links"`
}

// CanonicalJSON serializes g as {"nodes": [...], "links": [...]}, nodes
// sorted by id and links sorted by (source, target, type) — the same
// order Nodes() and Edges() already return — with 2-space indentation.
func (g *Graph) CanonicalJSON() ([]byte, error) {
	nodes := g.Nodes()
	edges := g.Edges()

	doc := jsonGraph{
		Nodes: make([]jsonNode, len(nodes)),
		Links: make([]jsonLink, len(edges)),
	}
	for i, n := range nodes {
		methods := n.Methods
		if methods == nil {
			methods = []string{}
		}
		doc.Nodes[i] = jsonNode{
			ID:        n.ID,
			Name:      n.Name,
			Namespace: n.Namespace,
			Type:      n.Type,
			FilePath:  n.FilePath,
			Methods:   methods,
		}
	}
	for i, e := range edges {
		doc.Links[i] = jsonLink{
			Source: e.SourceID,
			Target: e.TargetID,
			Type:   e.Type,
			Weight: e.Weight,
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
