// Package store provides the read-only thought store the view layer
// consumes: parent/child lookup, deterministic sibling ordering, and the
// visibility filter. Two implementations share the contract: an in-memory
// index built from a loaded document, and a sqlite-backed store for
// outlines too large to hold resident.
package store

import (
	"sort"

	"github.com/Dicklesworthstone/outline_viewer/pkg/model"
)

// Predicate decides whether a child thought is visible in the outline.
type Predicate func(model.Thought) bool

// DefaultFilter hides metadata attribute thoughts (values starting with "=")
// from the outline, the way pinned/metadata children are filtered out of a
// rendered thoughtspace.
func DefaultFilter(t model.Thought) bool {
	return !t.IsAttribute()
}

// MemoryStore indexes a loaded outline for O(1) parent/child queries.
// It is immutable after construction; reload builds a fresh store.
type MemoryStore struct {
	thoughts map[model.ThoughtID]model.Thought
	children map[model.ThoughtID][]model.ThoughtID
	filter   Predicate
}

// NewMemoryStore builds a store from a flat slice of thoughts.
//
// Dangling parent references attach the child to the root rather than
// dropping it: a thought whose parent vanished should stay reachable, not
// disappear from the outline. Parent chains that loop back on themselves are
// broken the same way.
func NewMemoryStore(thoughts []model.Thought, filter Predicate) *MemoryStore {
	if filter == nil {
		filter = DefaultFilter
	}
	s := &MemoryStore{
		thoughts: make(map[model.ThoughtID]model.Thought, len(thoughts)),
		children: make(map[model.ThoughtID][]model.ThoughtID),
		filter:   filter,
	}

	for _, t := range thoughts {
		if t.ID == "" || t.ID == model.RootID {
			continue
		}
		s.thoughts[t.ID] = t
	}

	for _, t := range s.thoughts {
		parent := t.ParentID
		if parent == "" || parent == t.ID {
			parent = model.RootID
		}
		if _, ok := s.thoughts[parent]; !ok && parent != model.RootID {
			// Dangling reference: re-root instead of orphaning.
			parent = model.RootID
		}
		s.children[parent] = append(s.children[parent], t.ID)
	}

	s.breakCycles()

	for parent := range s.children {
		s.sortSiblings(parent)
	}
	return s
}

// breakCycles re-roots any thought whose parent chain never reaches the
// root. Such chains are store corruption; re-rooting keeps every thought
// reachable without risking infinite traversal.
func (s *MemoryStore) breakCycles() {
	const (
		unknown = iota
		visiting
		safe
	)
	states := make(map[model.ThoughtID]int, len(s.thoughts))

	var walk func(id model.ThoughtID) bool
	walk = func(id model.ThoughtID) bool {
		if id == model.RootID {
			return true
		}
		switch states[id] {
		case safe:
			return true
		case visiting:
			return false // loop detected
		}
		states[id] = visiting
		t := s.thoughts[id]
		parent := t.ParentID
		if parent == "" || parent == id {
			parent = model.RootID
		}
		if _, ok := s.thoughts[parent]; !ok {
			parent = model.RootID
		}
		ok := walk(parent)
		if !ok {
			// Detach this link: the offender becomes a root child.
			s.detach(parent, id)
			s.children[model.RootID] = append(s.children[model.RootID], id)
		}
		states[id] = safe
		return true
	}

	for id := range s.thoughts {
		walk(id)
	}
}

func (s *MemoryStore) detach(parent, child model.ThoughtID) {
	kids := s.children[parent]
	for i, k := range kids {
		if k == child {
			s.children[parent] = append(kids[:i:i], kids[i+1:]...)
			return
		}
	}
}

// sortSiblings orders children by rank, then creation time, then ID, giving
// a stable total order even when ranks collide.
func (s *MemoryStore) sortSiblings(parent model.ThoughtID) {
	kids := s.children[parent]
	sort.SliceStable(kids, func(i, j int) bool {
		a, b := s.thoughts[kids[i]], s.thoughts[kids[j]]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Root returns the document root ID.
func (s *MemoryStore) Root() model.ThoughtID {
	return model.RootID
}

// Resolve looks up a thought by ID.
func (s *MemoryStore) Resolve(id model.ThoughtID) (model.Thought, bool) {
	if id == model.RootID {
		return model.Thought{ID: model.RootID}, true
	}
	t, ok := s.thoughts[id]
	return t, ok
}

// ChildrenSorted returns the visible children of a thought in display order.
func (s *MemoryStore) ChildrenSorted(id model.ThoughtID) []model.Thought {
	ids := s.children[id]
	if len(ids) == 0 {
		return nil
	}
	out := make([]model.Thought, 0, len(ids))
	for _, cid := range ids {
		t, ok := s.thoughts[cid]
		if !ok {
			continue
		}
		if !s.filter(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// HasVisibleChildren reports whether at least one child survives the filter.
func (s *MemoryStore) HasVisibleChildren(id model.ThoughtID) bool {
	for _, cid := range s.children[id] {
		if t, ok := s.thoughts[cid]; ok && s.filter(t) {
			return true
		}
	}
	return false
}

// Len returns the number of indexed thoughts.
func (s *MemoryStore) Len() int {
	return len(s.thoughts)
}

// All returns every indexed thought in unspecified order.
func (s *MemoryStore) All() []model.Thought {
	out := make([]model.Thought, 0, len(s.thoughts))
	for _, t := range s.thoughts {
		out = append(out, t)
	}
	return out
}
