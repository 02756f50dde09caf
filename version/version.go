package version

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/forma/diagram"
)

// Version is one immutable capture of a diagram's graph.
type Version struct {
	ID        string         `json:"id"`
	DiagramID string         `json:"diagram_id,omitempty"`
	Number    int            `json:"version_number"`
	Summary   string         `json:"change_summary"`
	Tag       string         `json:"tag,omitempty"`
	Major     bool           `json:"is_major_version"`
	ParentID  string         `json:"parent_version,omitempty"`
	Author    string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Graph     *diagram.Graph `json:"snapshot"`
}

// Option configures a new version.
type Option func(*Version)

// WithSummary sets the change summary shown in history listings.
func WithSummary(s string) Option {
	return func(v *Version) { v.Summary = s }
}

// WithTag labels the version, e.g. "v1.0" or "pre-review".
func WithTag(tag string) Option {
	return func(v *Version) { v.Tag = tag }
}

// WithAuthor records who created the version.
func WithAuthor(name string) Option {
	return func(v *Version) { v.Author = name }
}

// WithDiagram binds the version to a diagram id. Versions derived from a
// parent inherit its diagram id without this option.
func WithDiagram(id string) Option {
	return func(v *Version) { v.DiagramID = id }
}

// AsMajor marks the version as a major milestone.
func AsMajor() Option {
	return func(v *Version) { v.Major = true }
}

// NewVersion captures the graph as the next version after parent. A nil
// parent starts the history at number 1. The graph is deep-copied; the
// caller keeps ownership of g.
func NewVersion(g *diagram.Graph, parent *Version, opts ...Option) *Version {
	v := &Version{
		ID:        uuid.NewString(),
		Number:    1,
		CreatedAt: time.Now(),
		Graph:     g.Clone(),
	}
	if parent != nil {
		v.Number = parent.Number + 1
		v.ParentID = parent.ID
		v.DiagramID = parent.DiagramID
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.Summary == "" {
		v.Summary = fmt.Sprintf("Version %d", v.Number)
	}
	return v
}

// Initial reports if the version opened its diagram's history.
func (v *Version) Initial() bool {
	return v.ParentID == ""
}

// ChangesFromParent reports what the version changed relative to its
// parent snapshot. The first version of a diagram has no parent, and
// everything in its graph reads as added.
func (v *Version) ChangesFromParent(parent *Version) *Changes {
	if parent == nil {
		return Diff(&diagram.Graph{}, v.Graph)
	}
	return Diff(parent.Graph, v.Graph)
}
