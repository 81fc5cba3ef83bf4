// Package loader reads and writes the on-disk outline document and the
// per-document view state kept under the .ov/ data directory.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

// DataDirName is the per-document data directory, analogous to a VCS dotdir.
const DataDirName = ".ov"

// OutlineFileName is the outline document inside the data directory.
const OutlineFileName = "outline.json"

// OutlinePath returns the outline file path for a document root directory.
func OutlinePath(root string) string {
	return filepath.Join(root, DataDirName, OutlineFileName)
}

// LoadOutline reads the outline document under the given root directory.
// An empty root means the current working directory.
func LoadOutline(root string) ([]model.Thought, error) {
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	return LoadOutlineFile(OutlinePath(root))
}

// LoadOutlineFile reads thoughts directly from a specific outline file.
// The document is a flat JSON array; hierarchy is reconstructed from
// parent IDs by the store, not by the file layout.
func LoadOutlineFile(path string) ([]model.Thought, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no outline found at %s", path)
		}
		return nil, fmt.Errorf("failed to read outline file: %w", err)
	}

	var thoughts []model.Thought
	if err := json.Unmarshal(data, &thoughts); err != nil {
		return nil, fmt.Errorf("failed to parse outline file %s: %w", path, err)
	}

	// Drop entries the store could never index rather than failing the
	// whole document.
	out := thoughts[:0]
	for _, t := range thoughts {
		if t.ID == "" || t.ID == model.RootID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// SaveOutline writes the outline document under the given root directory,
// creating the data directory if needed. The write goes through a temp file
// so a crash mid-write never truncates the document.
func SaveOutline(root string, thoughts []model.Thought) error {
	path := OutlinePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(thoughts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace outline: %w", err)
	}
	return nil
}

// FindOutlineRoot walks up from dir looking for a directory that contains
// the .ov/ data directory. It stops at the filesystem root and never climbs
// above the user's home directory.
func FindOutlineRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		dataDir := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// DetectOutlineRoot finds the outline root for the current working directory.
func DetectOutlineRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return FindOutlineRoot(dir)
}
