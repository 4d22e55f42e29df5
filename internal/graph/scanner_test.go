package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixtureFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("<?php\n"), 0o644))
}

func TestScan_DeterministicSortedOrder(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "b", "Z.php"))
	writeFixtureFile(t, filepath.Join(root, "a", "Y.php"))
	writeFixtureFile(t, filepath.Join(root, "a", "X.php"))
	writeFixtureFile(t, filepath.Join(root, "Root.php"))

	first, err := Scan(root, ScanOptions{})
	require.NoError(t, err)

	second, err := Scan(root, ScanOptions{})
	require.NoError(t, err)

	require.Equal(t, first, second, "repeated scans over an unchanged tree must return identical ordering")
	require.Equal(t, []string{
		filepath.Join(root, "Root.php"),
		filepath.Join(root, "a", "X.php"),
		filepath.Join(root, "a", "Y.php"),
		filepath.Join(root, "b", "Z.php"),
	}, first)
}

func TestScan_OnlyMatchesConfiguredExtension(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "A.php"))
	writeFixtureFile(t, filepath.Join(root, "notes.txt"))

	got, err := Scan(root, ScanOptions{Extension: ".php"})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "A.php")}, got)
}

func TestScan_MaxFilesCapsResult(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "A.php"))
	writeFixtureFile(t, filepath.Join(root, "B.php"))
	writeFixtureFile(t, filepath.Join(root, "C.php"))

	got, err := Scan(root, ScanOptions{MaxFiles: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestScan_ZeroMaxFilesIsUnbounded(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"A.php", "B.php", "C.php"} {
		writeFixtureFile(t, filepath.Join(root, name))
	}

	got, err := Scan(root, ScanOptions{MaxFiles: 0})
	require.NoError(t, err)
	require.Len(t, got, 3)
}
