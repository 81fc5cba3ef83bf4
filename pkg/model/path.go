package model

import "strings"

// Path is an ordered chain of thought IDs from the document root down to a
// node. The root itself is excluded: the root is the empty path, a direct
// child of the root has length 1. Acyclicity is enforced by the store and
// assumed here.
type Path []ThoughtID

// SimplePath is a Path that is known to resolve to a real thought chain
// (no unresolved or pending IDs). The flattener only ever emits SimplePaths
// because it builds them from thoughts the store just resolved.
type SimplePath = Path

// pathHashSep joins path segments in Hash. The unit separator cannot occur
// in a ThoughtID, so distinct paths always hash differently.
const pathHashSep = "\x1f"

// Hash returns a deterministic key for the path, used to index the
// expansion set. The empty path (the root) hashes to "".
func (p Path) Hash() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, pathHashSep)
}

// Leaf returns the last segment of the path, or RootID for the empty path.
func (p Path) Leaf() ThoughtID {
	if len(p) == 0 {
		return RootID
	}
	return p[len(p)-1]
}

// Parent returns the path with its last segment removed. The parent of a
// length-1 path is the root (empty path).
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Equals reports whether two paths are segment-for-segment identical.
func (p Path) Equals(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// SharedPrefixLen returns the number of leading segments a and b agree on.
func SharedPrefixLen(a, b Path) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// IsAncestorOf reports whether a is a strict ancestor of b. The empty path
// (the root) is an ancestor of every non-empty path.
func IsAncestorOf(a, b Path) bool {
	return len(a) < len(b) && SharedPrefixLen(a, b) == len(a)
}

// IsDescendantOf reports whether a lies strictly below b.
func IsDescendantOf(a, b Path) bool {
	return IsAncestorOf(b, a)
}

// AppendChild returns a new path extending p by one segment. The result
// never aliases p's backing array, so emitted paths stay immutable even as
// the traversal keeps extending its working path.
func AppendChild(p Path, id ThoughtID) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = id
	return out
}
