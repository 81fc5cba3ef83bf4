package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverDocuments scans the configured discovery paths for directories
// containing an .ov/ data directory and merges them with the registered
// documents, preferring the registered name when a path matches.
func DiscoverDocuments(cfg Config) []Document {
	seen := make(map[string]bool)
	var result []Document

	// Start with registered documents
	for _, d := range cfg.Documents {
		resolved := d.ResolvedPath()
		seen[resolved] = true
		result = append(result, d)
	}

	for _, scanPath := range cfg.Discovery.ScanPaths {
		maxDepth := cfg.Discovery.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 3
		}
		for _, f := range scanForOutlines(scanPath, maxDepth) {
			if !seen[f] {
				seen[f] = true
				result = append(result, Document{
					Name: filepath.Base(f),
					Path: f,
				})
			}
		}
	}

	return result
}

// scanForOutlines walks a directory tree up to maxDepth levels deep,
// looking for directories that contain an .ov/ subdirectory.
func scanForOutlines(root string, maxDepth int) []string {
	root = expandHome(root)
	var results []string

	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}

		currentDepth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
		if currentDepth > maxDepth {
			return filepath.SkipDir
		}

		// Skip hidden directories (except .ov itself which we're looking for)
		name := d.Name()
		if strings.HasPrefix(name, ".") && name != ".ov" {
			return filepath.SkipDir
		}

		dataDir := filepath.Join(path, ".ov")
		if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
			results = append(results, path)
			return filepath.SkipDir // Don't recurse into documents
		}

		return nil
	})

	return results
}
