// Package e2e exercises a full analysis run against a small, realistic PHP
// fixture tree, from file scan through canonical JSON serialization,
// without mocking any internal stage.
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/strata/internal/graph"
	"github.com/dusk-indust/strata/internal/orchestrator"
	"github.com/dusk-indust/strata/internal/store"
)

// fixtureTree mirrors a tiny slice of a real PHP application: a base
// controller, two concrete controllers that each instantiate their own
// service, two services (one calling the other statically), and a trait.
var fixtureTree = map[string]string{
	"src/Controllers/BaseController.php": `<?php
namespace App\Controllers;

class BaseController {
    function render() {}
}
`,
	"src/Controllers/UserController.php": `<?php
namespace App\Controllers;

use Timestamps;

class UserController extends BaseController implements Sortable {
    function index() {
        $service = new \App\Services\UserService();
        return $service->all();
    }
}

interface Sortable {}
`,
	"src/Controllers/PostController.php": `<?php
namespace App\Controllers;

class PostController extends BaseController {
    function index() {
        $service = new \App\Services\PostService();
        return $service->all();
    }
}
`,
	"src/Services/UserService.php": `<?php
namespace App\Services;

class UserService {
    function all() {}
}
`,
	"src/Services/PostService.php": `<?php
namespace App\Services;

class PostService {
    function all() {
        return \App\Services\UserService::helper();
    }
}
`,
	"src/Traits/Timestamps.php": `<?php
namespace App;

trait Timestamps {}
`,
}

func writeFixtureTree(t *testing.T, root string) {
	t.Helper()
	for rel, src := range fixtureTree {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
}

func runOnce(t *testing.T, root string) (*orchestrator.RunSummary, []byte, []store.ComponentMetricsRow) {
	t.Helper()
	repo := store.NewMemRepository("")
	defer repo.Close()

	summary, err := orchestrator.Run(context.Background(), repo, orchestrator.Options{
		Root:        root,
		ProjectName: "fixture",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)

	files, err := graph.Scan(root, graph.ScanOptions{})
	require.NoError(t, err)
	resolver := graph.NewResolver(root)

	g := graph.New()
	for _, f := range files {
		res, err := graph.ExtractFile(f, resolver)
		require.NoError(t, err)
		for _, n := range res.Nodes {
			g.AddNode(n)
		}
	}
	for _, f := range files {
		res, err := graph.ExtractFile(f, resolver)
		require.NoError(t, err)
		for _, e := range res.Edges {
			g.AddEdge(e)
		}
	}
	payload, err := g.CanonicalJSON()
	require.NoError(t, err)

	rows, err := repo.GetComponentMetrics(context.Background(), summary.RunID)
	require.NoError(t, err)

	return summary, payload, rows
}

func TestGoldenRun_ByteIdenticalAcrossRepeatedRuns(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root)

	summaryA, jsonA, rowsA := runOnce(t, root)
	summaryB, jsonB, rowsB := runOnce(t, root)

	assert.Equal(t, summaryA.Files, summaryB.Files)
	assert.Equal(t, summaryA.Classes, summaryB.Classes)
	assert.Equal(t, summaryA.Edges, summaryB.Edges)
	assert.Equal(t, jsonA, jsonB, "independently re-extracted canonical JSON must be byte-identical run over run")
	assert.Equal(t, len(rowsA), len(rowsB))
}

func TestGoldenRun_UseTraitAttributionMatchesLastDeclaredClass(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root)

	// UserController.php declares an interface (Sortable) after the class,
	// so this also locks in that a trailing interface/trait declaration
	// never steals the use-trait attachment from the last declared class.
	resolver := graph.NewResolver(root)
	res, err := graph.ExtractFile(filepath.Join(root, "src/Controllers/UserController.php"), resolver)
	require.NoError(t, err)

	var traitSources []string
	for _, e := range res.Edges {
		if e.Type == graph.EdgeUsesTrait {
			traitSources = append(traitSources, e.SourceID)
		}
	}
	require.Len(t, traitSources, 1)
	assert.Equal(t, `App\Controllers\UserController`, traitSources[0])
}

func TestGoldenRun_StructuralProjectionDropsTraitEdges(t *testing.T) {
	root := t.TempDir()
	writeFixtureTree(t, root)

	files, err := graph.Scan(root, graph.ScanOptions{})
	require.NoError(t, err)
	resolver := graph.NewResolver(root)

	g := graph.New()
	var all []*graph.ExtractResult
	for _, f := range files {
		res, err := graph.ExtractFile(f, resolver)
		require.NoError(t, err)
		all = append(all, res)
	}
	for _, res := range all {
		for _, n := range res.Nodes {
			g.AddNode(n)
		}
	}
	for _, res := range all {
		for _, e := range res.Edges {
			g.AddEdge(e)
		}
	}

	projected := graph.StructuralProjection(g)
	for _, e := range projected.Edges() {
		assert.NotEqual(t, graph.EdgeUsesTrait, e.Type)
	}
}
