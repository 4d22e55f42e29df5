package graph

import (
	"os"
	"path/filepath"
	"sort"
)

// ScanOptions configures the file scanner.
type ScanOptions struct {
	// Extension is the file suffix to match, including the leading dot
	// (default ".php").
	Extension string
	// MaxFiles caps the number of files returned. Zero or negative means
	// unbounded.
	MaxFiles int
}

// Scan walks root recursively and returns every matching file's path, in a
// deterministic order: directories are visited depth-first, and within
// each directory, entries are sorted lexicographically before descending
// or matching — required so that two runs over an unchanged filesystem
// always produce the same file list.
func Scan(root string, opts ScanOptions) ([]string, error) {
	ext := opts.Extension
	if ext == "" {
		ext = ".php"
	}

	var out []string
	if err := scanDir(root, ext, &out); err != nil {
		return nil, err
	}

	if opts.MaxFiles > 0 && len(out) > opts.MaxFiles {
		out = out[:opts.MaxFiles]
	}
	return out, nil
}

func scanDir(dir, ext string, out *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)
		if entry.IsDir() {
			subdirs = append(subdirs, full)
			continue
		}
		if filepath.Ext(name) == ext {
			*out = append(*out, full)
		}
	}

	for _, sub := range subdirs {
		if err := scanDir(sub, ext, out); err != nil {
			return err
		}
	}
	return nil
}
