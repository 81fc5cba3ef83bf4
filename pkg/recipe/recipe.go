// Package recipe provides named view presets: reusable bundles of view
// settings (font size, fade window, initial expansion) that can be applied
// when the viewer starts. Built-in presets can be overridden by user recipes
// (~/.config/ov/recipes.yaml) and project recipes (.ov/recipes.yaml).
package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
	"github.com/Dicklesworthstone/outline_viewer/pkg/view"
)

// Recipe defines one reusable view preset.
type Recipe struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// FontSize overrides the indent-driving font size (0 = keep current).
	FontSize float64 `yaml:"font_size,omitempty" json:"font_size,omitempty"`

	// MaxDistance overrides the ancestor fade window bound (0 = keep current).
	MaxDistance int `yaml:"max_distance,omitempty" json:"max_distance,omitempty"`

	// ExpandDepth expands the outline down to this nesting level on open
	// (0 = keep the persisted expansion state).
	ExpandDepth int `yaml:"expand_depth,omitempty" json:"expand_depth,omitempty"`

	// ExpandAll expands every thought on open. Wins over ExpandDepth.
	ExpandAll bool `yaml:"expand_all,omitempty" json:"expand_all,omitempty"`

	// ShowDrops renders every drop target, as if a drag were in progress.
	ShowDrops bool `yaml:"show_drops,omitempty" json:"show_drops,omitempty"`
}

// Summary is the listing shape for --robot-recipes.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
}

// Apply folds the preset into a view-state snapshot. Expansion needs the
// store: depth-limited expansion walks the hierarchy top down.
func (r *Recipe) Apply(st view.Store, state view.ViewState) view.ViewState {
	if r == nil {
		return state
	}
	if r.FontSize > 0 {
		state.FontSize = r.FontSize
	}
	if r.MaxDistance > 0 {
		state.MaxDistance = r.MaxDistance
	}
	if r.ShowDrops {
		state.SimulateDrag = true
	}

	depth := r.ExpandDepth
	if r.ExpandAll {
		depth = -1 // unlimited
	}
	if depth != 0 {
		state = expandToDepth(st, state, depth)
	}
	return state
}

// expandToDepth expands every thought with visible children down to the
// given nesting level. A negative depth means unlimited.
func expandToDepth(st view.Store, state view.ViewState, depth int) view.ViewState {
	var walk func(p model.Path, level int)
	walk = func(p model.Path, level int) {
		if depth >= 0 && level > depth {
			return
		}
		for _, child := range st.ChildrenSorted(p.Leaf()) {
			childPath := model.AppendChild(p, child.ID)
			if st.HasVisibleChildren(child.ID) {
				state = state.Expand(childPath, true)
			}
			walk(childPath, level+1)
		}
	}
	walk(nil, 1)
	return state
}

// Loader holds the merged recipe set with source tracking.
type Loader struct {
	recipes map[string]Recipe
	sources map[string]string
}

// NewLoader returns a loader seeded with the built-in recipes only.
func NewLoader() *Loader {
	l := &Loader{
		recipes: make(map[string]Recipe),
		sources: make(map[string]string),
	}
	for _, r := range builtins() {
		l.recipes[r.Name] = r
		l.sources[r.Name] = "builtin"
	}
	return l
}

// LoadDefault builds a loader from the built-ins plus the user and project
// recipe files, in increasing precedence. Missing files are fine.
func LoadDefault(projectRoot string) (*Loader, error) {
	l := NewLoader()

	if home, err := os.UserHomeDir(); err == nil {
		if err := l.loadFile(filepath.Join(home, ".config", "ov", "recipes.yaml"), "user"); err != nil {
			return nil, err
		}
	}
	if projectRoot != "" {
		if err := l.loadFile(filepath.Join(projectRoot, ".ov", "recipes.yaml"), "project"); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Loader) loadFile(path, source string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var doc struct {
		Recipes []Recipe `yaml:"recipes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing recipes %s: %w", path, err)
	}

	for _, r := range doc.Recipes {
		if r.Name == "" {
			return fmt.Errorf("recipes %s: every recipe needs a name", path)
		}
		l.recipes[r.Name] = r
		l.sources[r.Name] = source
	}
	return nil
}

// Get returns the recipe with the given name, or nil.
func (l *Loader) Get(name string) *Recipe {
	r, ok := l.recipes[name]
	if !ok {
		return nil
	}
	return &r
}

// Names returns the known recipe names in unspecified order.
func (l *Loader) Names() []string {
	out := make([]string, 0, len(l.recipes))
	for name := range l.recipes {
		out = append(out, name)
	}
	return out
}

// ListSummaries returns one summary per recipe, for machine listing.
func (l *Loader) ListSummaries() []Summary {
	out := make([]Summary, 0, len(l.recipes))
	for name, r := range l.recipes {
		out = append(out, Summary{
			Name:        name,
			Description: r.Description,
			Source:      l.sources[name],
		})
	}
	return out
}

func builtins() []Recipe {
	return []Recipe{
		{
			Name:        "default",
			Description: "Persisted expansion state, default view settings",
		},
		{
			Name:        "overview",
			Description: "Top two levels expanded",
			ExpandDepth: 2,
		},
		{
			Name:        "full",
			Description: "Everything expanded",
			ExpandAll:   true,
		},
		{
			Name:        "presentation",
			Description: "Everything expanded, large indent, wide fade window",
			ExpandAll:   true,
			FontSize:    24,
			MaxDistance: 5,
		},
		{
			Name:        "drop-check",
			Description: "Every drop target rendered, for layout inspection",
			ShowDrops:   true,
		},
	}
}
