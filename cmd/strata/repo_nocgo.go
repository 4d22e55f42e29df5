//go:build !cgo

package main

import "github.com/dusk-indust/strata/internal/store"

// openRepository always returns the in-memory repository in non-cgo
// builds: KuzuDB's driver wraps a C library, so DATABASE_URL is silently
// ignored here rather than failing at startup.
func openRepository(dataDir string) (store.Repository, error) {
	return store.NewMemRepository(dataDir), nil
}
