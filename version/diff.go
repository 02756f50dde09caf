package version

import "github.com/syssam/forma/diagram"

// ChangeType names one kind of structural change between two snapshots.
type ChangeType string

// Change types reported by List.
const (
	ClassAdded           ChangeType = "class_added"
	ClassRemoved         ChangeType = "class_removed"
	ClassModified        ChangeType = "class_modified"
	RelationshipAdded    ChangeType = "relationship_added"
	RelationshipRemoved  ChangeType = "relationship_removed"
	RelationshipModified ChangeType = "relationship_modified"
)

// ClassChange records a class that exists in both snapshots with
// different content.
type ClassChange struct {
	ID       string         `json:"id"`
	Previous *diagram.Class `json:"previous"`
	Current  *diagram.Class `json:"current"`
}

// RelationshipChange records (analogously) a modified relationship.
type RelationshipChange struct {
	ID       string                `json:"id"`
	Previous *diagram.Relationship `json:"previous"`
	Current  *diagram.Relationship `json:"current"`
}

// Changes groups everything that differs between a base and a target
// snapshot. Elements are matched by id; content comparison follows
// ClassEqual and RelationshipEqual.
type Changes struct {
	AddedClasses          []*diagram.Class        `json:"added_classes"`
	ModifiedClasses       []*ClassChange          `json:"modified_classes"`
	RemovedClasses        []*diagram.Class        `json:"removed_classes"`
	AddedRelationships    []*diagram.Relationship `json:"added_relationships"`
	ModifiedRelationships []*RelationshipChange   `json:"modified_relationships"`
	RemovedRelationships  []*diagram.Relationship `json:"removed_relationships"`
}

// Empty reports if the two snapshots are structurally identical.
func (c *Changes) Empty() bool {
	return len(c.AddedClasses) == 0 && len(c.ModifiedClasses) == 0 && len(c.RemovedClasses) == 0 &&
		len(c.AddedRelationships) == 0 && len(c.ModifiedRelationships) == 0 && len(c.RemovedRelationships) == 0
}

// Change is one flat entry of a change report.
type Change struct {
	Type      ChangeType `json:"type"`
	ElementID string     `json:"element_id"`
	Data      any        `json:"data,omitempty"`
	Before    any        `json:"before,omitempty"`
	After     any        `json:"after,omitempty"`
}

// List flattens the buckets into change records, classes before
// relationships, additions before modifications before removals.
func (c *Changes) List() []Change {
	var out []Change
	for _, cl := range c.AddedClasses {
		out = append(out, Change{Type: ClassAdded, ElementID: cl.ID, Data: cl})
	}
	for _, m := range c.ModifiedClasses {
		out = append(out, Change{Type: ClassModified, ElementID: m.ID, Before: m.Previous, After: m.Current})
	}
	for _, cl := range c.RemovedClasses {
		out = append(out, Change{Type: ClassRemoved, ElementID: cl.ID, Data: cl})
	}
	for _, r := range c.AddedRelationships {
		out = append(out, Change{Type: RelationshipAdded, ElementID: r.ID, Data: r})
	}
	for _, m := range c.ModifiedRelationships {
		out = append(out, Change{Type: RelationshipModified, ElementID: m.ID, Before: m.Previous, After: m.Current})
	}
	for _, r := range c.RemovedRelationships {
		out = append(out, Change{Type: RelationshipRemoved, ElementID: r.ID, Data: r})
	}
	return out
}

// Diff compares two graphs element by element. Added and modified entries
// follow target order, removed entries follow base order.
func Diff(base, target *diagram.Graph) *Changes {
	c := &Changes{}
	baseClasses := make(map[string]*diagram.Class, len(base.Classes))
	for _, cl := range base.Classes {
		baseClasses[cl.ID] = cl
	}
	targetClasses := make(map[string]*diagram.Class, len(target.Classes))
	for _, cl := range target.Classes {
		targetClasses[cl.ID] = cl
		prev, ok := baseClasses[cl.ID]
		switch {
		case !ok:
			c.AddedClasses = append(c.AddedClasses, cl)
		case !ClassEqual(prev, cl):
			c.ModifiedClasses = append(c.ModifiedClasses, &ClassChange{ID: cl.ID, Previous: prev, Current: cl})
		}
	}
	for _, cl := range base.Classes {
		if _, ok := targetClasses[cl.ID]; !ok {
			c.RemovedClasses = append(c.RemovedClasses, cl)
		}
	}

	baseRels := make(map[string]*diagram.Relationship, len(base.Relationships))
	for _, r := range base.Relationships {
		baseRels[r.ID] = r
	}
	targetRels := make(map[string]*diagram.Relationship, len(target.Relationships))
	for _, r := range target.Relationships {
		targetRels[r.ID] = r
		prev, ok := baseRels[r.ID]
		switch {
		case !ok:
			c.AddedRelationships = append(c.AddedRelationships, r)
		case !RelationshipEqual(prev, r):
			c.ModifiedRelationships = append(c.ModifiedRelationships, &RelationshipChange{ID: r.ID, Previous: prev, Current: r})
		}
	}
	for _, r := range base.Relationships {
		if _, ok := targetRels[r.ID]; !ok {
			c.RemovedRelationships = append(c.RemovedRelationships, r)
		}
	}
	return c
}

// Compare diffs two versions of the same diagram, always treating the one
// with the lower number as the base so that a swapped argument order
// cannot invert the report.
func Compare(a, b *Version) (base, target *Version, changes *Changes) {
	base, target = a, b
	if b.Number < a.Number {
		base, target = b, a
	}
	return base, target, Diff(base.Graph, target.Graph)
}
