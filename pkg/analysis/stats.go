// Package analysis computes shape statistics over an outline: how deep it
// nests, how wide it branches, where the bulk of the content sits. The
// output is structured for machine consumption by the --robot-stats flag.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

// Source is the slice of the store contract the walk needs. Both the memory
// and the sqlite store satisfy it.
type Source interface {
	ChildrenSorted(id model.ThoughtID) []model.Thought
}

// Distribution summarizes one numeric sample of the outline's shape.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// Stats is the full shape report for one outline.
type Stats struct {
	// ThoughtCount is the number of thoughts visible to the outline
	// (attribute thoughts excluded by the store filter).
	ThoughtCount int `json:"thought_count"`

	// RootChildren is the number of top-level thoughts.
	RootChildren int `json:"root_children"`

	// LeafCount is the number of thoughts without visible children.
	LeafCount int `json:"leaf_count"`

	// NoteCount is the number of thoughts carrying a note.
	NoteCount int `json:"note_count"`

	// MaxDepth is the deepest nesting level (root children are depth 1).
	MaxDepth int `json:"max_depth"`

	// Depth distributes the nesting level over all thoughts.
	Depth Distribution `json:"depth"`

	// Branching distributes the visible child count over non-leaf thoughts.
	Branching Distribution `json:"branching"`
}

// Compute walks the whole store and builds the shape report. The walk is
// depth-first from the root, so cycles must already be broken by the store.
func Compute(st Source) Stats {
	var s Stats
	var depths, branching []float64

	var walk func(id model.ThoughtID, depth int)
	walk = func(id model.ThoughtID, depth int) {
		children := st.ChildrenSorted(id)
		if id != model.RootID {
			s.ThoughtCount++
			depths = append(depths, float64(depth))
			if depth > s.MaxDepth {
				s.MaxDepth = depth
			}
			if len(children) == 0 {
				s.LeafCount++
			} else {
				branching = append(branching, float64(len(children)))
			}
		}
		for _, child := range children {
			if child.Note != "" {
				s.NoteCount++
			}
			walk(child.ID, depth+1)
		}
	}
	walk(model.RootID, 0)

	s.RootChildren = len(st.ChildrenSorted(model.RootID))
	s.Depth = distribution(depths)
	s.Branching = distribution(branching)
	return s
}

// distribution reduces a sample to its summary. Quantiles require sorted
// input; the sample is sorted in place.
func distribution(sample []float64) Distribution {
	if len(sample) == 0 {
		return Distribution{}
	}
	sort.Float64s(sample)

	mean, std := stat.MeanStdDev(sample, nil)
	if len(sample) < 2 {
		std = 0 // MeanStdDev yields NaN for a single observation
	}
	return Distribution{
		Mean:   mean,
		StdDev: std,
		Min:    sample[0],
		Max:    sample[len(sample)-1],
		P50:    stat.Quantile(0.5, stat.Empirical, sample, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sample, nil),
	}
}
