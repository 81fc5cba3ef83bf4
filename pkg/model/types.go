package model

import (
	"fmt"
	"time"
)

// ThoughtID is the opaque identity of a single thought in the outline.
type ThoughtID string

// RootID is the identity of the document root. The root is never displayed
// and never appears in a Path; thoughts whose ParentID is empty (or dangling)
// are treated as its children.
const RootID ThoughtID = "__root__"

// Thought is one node of the outline. Identity and content are owned by the
// store; the view layer only ever holds immutable copies for the duration of
// a single computation pass.
type Thought struct {
	ID        ThoughtID `json:"id"`
	ParentID  ThoughtID `json:"parent_id,omitempty"`
	Value     string    `json:"value"`
	Rank      int       `json:"rank"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Validate checks if the thought data is logically valid
func (t *Thought) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("thought ID cannot be empty")
	}
	if t.ParentID == t.ID {
		return fmt.Errorf("thought %s cannot be its own parent", t.ID)
	}
	if !t.UpdatedAt.IsZero() && !t.CreatedAt.IsZero() && t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("updated_at (%v) cannot be before created_at (%v)", t.UpdatedAt, t.CreatedAt)
	}
	return nil
}

// IsAttribute reports whether the thought is a metadata attribute
// (value starting with "="). Attribute thoughts carry per-node settings
// and are hidden from the outline by the default child filter.
func (t Thought) IsAttribute() bool {
	return len(t.Value) > 0 && t.Value[0] == '='
}
