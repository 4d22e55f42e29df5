//go:build cgo

package main

import (
	"os"

	"github.com/dusk-indust/strata/internal/store"
)

// openRepository honors DATABASE_URL as a KuzuDB file path when set;
// otherwise it falls back to the in-memory repository. Only cgo builds can
// open a KuzuDB database at all, so the non-cgo build of this function
// never looks at DATABASE_URL.
func openRepository(dataDir string) (store.Repository, error) {
	if dbPath := os.Getenv("DATABASE_URL"); dbPath != "" {
		return store.NewKuzuFileRepository(dbPath, dataDir)
	}
	return store.NewMemRepository(dataDir), nil
}
