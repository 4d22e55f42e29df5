package graph

import (
	"path/filepath"
	"strings"
)

// Resolver computes fully-qualified, collision-resistant node ids from a
// raw declared name, the enclosing file's namespace (if any), and the
// file's location relative to the analysis root.
//
// Resolution order:
//  1. a name already containing the namespace separator is returned as-is.
//  2. otherwise, a declared namespace wins: "namespace\name".
//  3. otherwise, the file's directory relative to the root stands in for a
//     namespace: "rel\dir\name", or just "name" when the file is directly
//     under the root.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver anchored at root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Qualify resolves name within the context of namespace (may be empty) and
// filePath, producing a fully-qualified id.
func (r *Resolver) Qualify(name, namespace, filePath string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, `\`) {
		return name
	}
	if namespace != "" {
		return namespace + `\` + name
	}

	dir := filepath.Dir(filePath)
	rel, err := filepath.Rel(r.root, dir)
	if err != nil || rel == "." || rel == "" {
		return name
	}
	rel = filepath.ToSlash(rel)
	rel = strings.ReplaceAll(rel, "/", `\`)
	return rel + `\` + name
}
