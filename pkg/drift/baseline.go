// Package drift detects structural drift of an outline by comparing its
// current shape statistics to a saved baseline snapshot. It backs the
// --save-baseline and --check-drift commands, with exit codes meant for CI.
package drift

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Dicklesworthstone/outline_viewer/pkg/analysis"
)

// BaselineFileName is the snapshot file inside the data directory.
const BaselineFileName = "baseline.json"

// Baseline is a saved shape snapshot to compare later runs against.
type Baseline struct {
	CreatedAt   time.Time      `json:"created_at"`
	Description string         `json:"description,omitempty"`
	Stats       analysis.Stats `json:"stats"`
}

// New builds a baseline from the current statistics.
func New(stats analysis.Stats, description string) Baseline {
	return Baseline{
		CreatedAt:   time.Now().UTC(),
		Description: description,
		Stats:       stats,
	}
}

// DefaultPath returns the baseline path for a document root.
func DefaultPath(root string) string {
	return filepath.Join(root, ".ov", BaselineFileName)
}

// Exists reports whether a baseline has been saved at the given path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads a baseline snapshot.
func Load(path string) (Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Baseline{}, fmt.Errorf("read baseline: %w", err)
	}
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	return b, nil
}

// Save writes the baseline snapshot, creating the data directory if needed.
func (b Baseline) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Summary renders a human-readable description of the snapshot.
func (b Baseline) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Baseline from %s\n", b.CreatedAt.Format(time.RFC3339))
	if b.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	}
	fmt.Fprintf(&sb, "Thoughts: %d (%d top-level, %d leaves, %d notes)\n",
		b.Stats.ThoughtCount, b.Stats.RootChildren, b.Stats.LeafCount, b.Stats.NoteCount)
	fmt.Fprintf(&sb, "Max depth: %d\n", b.Stats.MaxDepth)
	return sb.String()
}
