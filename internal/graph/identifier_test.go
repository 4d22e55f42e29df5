package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualify_AlreadyQualifiedNameReturnedAsIs(t *testing.T) {
	r := NewResolver("/project")
	got := r.Qualify(`App\Core\User`, "App\\Web", "/project/src/Web/User.php")
	assert.Equal(t, `App\Core\User`, got)
}

func TestQualify_NamespacePrefixWins(t *testing.T) {
	r := NewResolver("/project")
	got := r.Qualify("User", `App\Core`, "/project/src/Core/User.php")
	assert.Equal(t, `App\Core\User`, got)
}

func TestQualify_DirectoryRelativeFallback(t *testing.T) {
	r := NewResolver("/project")
	got := r.Qualify("User", "", "/project/src/Models/User.php")
	assert.Equal(t, `src\Models\User`, got)
}

func TestQualify_FileDirectlyUnderRootHasBareName(t *testing.T) {
	r := NewResolver("/project")
	got := r.Qualify("User", "", "/project/User.php")
	assert.Equal(t, "User", got)
}

func TestQualify_NamespaceDisambiguation(t *testing.T) {
	r := NewResolver("/project")

	core := r.Qualify("User", `App\Core`, "/project/src/Core/User.php")
	web := r.Qualify("User", `App\Web`, "/project/src/Web/User.php")

	assert.Equal(t, `App\Core\User`, core)
	assert.Equal(t, `App\Web\User`, web)
	assert.NotEqual(t, core, web, "same bare name in different namespaces must resolve to distinct ids")

	g := New()
	g.AddNode(Node{ID: core, Name: "User", Namespace: `App\Core`, Type: NodeClass})
	g.AddNode(Node{ID: web, Name: "User", Namespace: `App\Web`, Type: NodeClass})

	assert.Equal(t, 2, g.NodeCount(), "the two User classes must coexist as distinct nodes")
	assert.Equal(t, 0, g.EdgeCount(), "nothing in this fixture references either class, so no edge should exist")
}
