// Package config loads the viewer configuration from .ov/config.yaml and
// discovers outline documents on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the viewer configuration inside the data directory.
const ConfigFileName = "config.yaml"

// Config is the viewer configuration (.ov/config.yaml).
type Config struct {
	// FontSize drives the indent unit of the layout. Zero means the
	// view-layer default.
	FontSize float64 `yaml:"font_size,omitempty" json:"font_size,omitempty"`

	// MaxDistance bounds the ancestor window of the focus classifier.
	// Zero means the view-layer default.
	MaxDistance int `yaml:"max_distance,omitempty" json:"max_distance,omitempty"`

	// Theme selects the color theme. Empty means the default dark theme.
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// Documents lists registered outline documents for the picker.
	Documents []Document `yaml:"documents,omitempty" json:"documents,omitempty"`

	// Discovery configures automatic document discovery.
	Discovery Discovery `yaml:"discovery,omitempty" json:"discovery,omitempty"`
}

// Document is one registered outline document.
type Document struct {
	// Name is the display name (default: directory base name).
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Path is the document root directory, absolute or ~-relative.
	Path string `yaml:"path" json:"path"`
}

// Discovery controls scanning for unregistered documents.
type Discovery struct {
	// ScanPaths are directories to scan for .ov/ data directories.
	ScanPaths []string `yaml:"scan_paths,omitempty" json:"scan_paths,omitempty"`

	// MaxDepth limits how deep the scan descends (default: 3).
	MaxDepth int `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
}

// DisplayName returns the effective name for a document.
func (d Document) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(d.ResolvedPath())
}

// ResolvedPath expands a leading ~ to the user's home directory.
func (d Document) ResolvedPath() string {
	return expandHome(d.Path)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FontSize < 0 {
		return fmt.Errorf("font_size must not be negative")
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("max_distance must not be negative")
	}
	for i, d := range c.Documents {
		if d.Path == "" {
			return fmt.Errorf("documents[%d]: path is required", i)
		}
	}
	return nil
}

// Load reads the configuration for a document root. A missing file yields
// the zero config: the viewer runs fine without one.
func Load(root string) (Config, error) {
	return LoadFile(filepath.Join(root, ".ov", ConfigFileName))
}

// LoadFile reads a configuration from a specific path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
