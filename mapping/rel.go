package mapping

import (
	"fmt"
	"strings"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/naming"
)

// =============================================================================
// Rel type
// =============================================================================

// Rel is the cardinality shape of an edge, derived from its endpoint
// multiplicities.
type Rel int

// Cardinality shapes.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one.
	O2M            // One to many.
	M2O            // Many to one.
	M2M            // Many to many.
)

// String returns the annotation name of the shape.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2O:
		s = "OneToOne"
	case O2M:
		s = "OneToMany"
	case M2O:
		s = "ManyToOne"
	case M2M:
		s = "ManyToMany"
	}
	return s
}

// Inverse returns the shape seen from the opposite end of the edge.
func (r Rel) Inverse() Rel {
	switch r {
	case O2M:
		return M2O
	case M2O:
		return O2M
	case O2O:
		return O2O
	case M2M:
		return M2M
	default:
		return M2O
	}
}

// Collection reports if a field of this shape holds many values.
func (r Rel) Collection() bool {
	return r == O2M || r == M2M
}

// Classify derives the cardinality shape from the two endpoint
// multiplicities. The function is total over the five multiplicity values;
// anything else must be rejected at the graph-construction boundary.
func Classify(source, target diagram.Multiplicity) Rel {
	switch {
	case source.Singular() && target.Singular():
		return O2O
	case source.Singular() && target.Plural():
		return O2M
	case source.Plural() && target.Singular():
		return M2O
	default:
		return M2M
	}
}

// =============================================================================
// Fetch policy
// =============================================================================

// Fetch is the load policy of a relationship field.
type Fetch string

// Fetch policies.
const (
	Lazy  Fetch = "LAZY"
	Eager Fetch = "EAGER"
)

// FetchFor returns the default fetch policy for an edge. Composition and
// aggregation edges load lazily, as do collection-valued shapes; the
// remaining singular associations load eagerly.
func FetchFor(kind diagram.RelKind, rel Rel) Fetch {
	switch {
	case kind == diagram.Composition || kind == diagram.Aggregation:
		return Lazy
	case rel == M2M || rel == O2M:
		return Lazy
	default:
		return Eager
	}
}

// =============================================================================
// Cascade policy
// =============================================================================

// Cascade is a bit set of persistence operations that propagate across an
// edge.
type Cascade uint

// Cascade operations.
const (
	CascadePersist Cascade = 1 << iota
	CascadeMerge
	CascadeRemove
	CascadeRefresh
	CascadeDetach

	// CascadeAll propagates every operation.
	CascadeAll = CascadePersist | CascadeMerge | CascadeRemove | CascadeRefresh | CascadeDetach
)

// Has reports if the set contains all operations of o.
func (c Cascade) Has(o Cascade) bool { return c&o == o }

// Types returns the cascade set as annotation constants, in declaration
// order, collapsing the full set into CascadeType.ALL.
func (c Cascade) Types() []string {
	if c == 0 {
		return nil
	}
	if c.Has(CascadeAll) {
		return []string{"CascadeType.ALL"}
	}
	names := []struct {
		op   Cascade
		name string
	}{
		{CascadePersist, "CascadeType.PERSIST"},
		{CascadeMerge, "CascadeType.MERGE"},
		{CascadeRemove, "CascadeType.REMOVE"},
		{CascadeRefresh, "CascadeType.REFRESH"},
		{CascadeDetach, "CascadeType.DETACH"},
	}
	var ts []string
	for _, n := range names {
		if c.Has(n.op) {
			ts = append(ts, n.name)
		}
	}
	return ts
}

// CascadeFor returns the default cascade set for an edge kind: composition
// owns its parts outright, aggregation propagates persist and merge, and
// plain associations propagate nothing.
func CascadeFor(kind diagram.RelKind) Cascade {
	switch kind {
	case diagram.Composition:
		return CascadeAll
	case diagram.Aggregation:
		return CascadePersist | CascadeMerge
	default:
		return 0
	}
}

// OrphanRemoval reports if removing a child from the relationship deletes
// it. Only composition implies exclusive ownership.
func OrphanRemoval(kind diagram.RelKind) bool {
	return kind == diagram.Composition
}

// =============================================================================
// Field naming
// =============================================================================

// SourceFieldName returns the name of the field generated on the source
// class, pointing at the target. An explicit source role wins; otherwise
// the target class name is lower-cased, with an "s" suffix when the target
// end is plural.
func SourceFieldName(r *diagram.Relationship, target *diagram.Class) string {
	if r.SourceRole != "" {
		return r.SourceRole
	}
	name := strings.ToLower(target.Name)
	switch r.Kind {
	case diagram.Association, diagram.Aggregation, diagram.Composition:
		if r.TargetMultiplicity.Plural() {
			return name + "s"
		}
	}
	return name
}

// TargetFieldName returns the name of the inverse field generated on the
// target class, pointing back at the source, or "" when the target end is
// not navigable. A non-navigable end never yields a field, even with an
// explicit role.
func TargetFieldName(r *diagram.Relationship, source *diagram.Class) string {
	if !r.TargetNavigable {
		return ""
	}
	if r.TargetRole != "" {
		return r.TargetRole
	}
	name := strings.ToLower(source.Name)
	if r.SourceMultiplicity.Plural() {
		return name + "s"
	}
	return name
}

// SourceFieldType returns the declared type of the source-side field.
func SourceFieldType(r *diagram.Relationship, target *diagram.Class) string {
	if r.TargetMultiplicity.Plural() {
		return "List<" + target.Name + ">"
	}
	return target.Name
}

// TargetFieldType returns the declared type of the target-side field.
func TargetFieldType(r *diagram.Relationship, source *diagram.Class) string {
	if r.SourceMultiplicity.Plural() {
		return "List<" + source.Name + ">"
	}
	return source.Name
}

// JoinColumn returns the foreign key column held by the owning side.
func JoinColumn(target *diagram.Class) string {
	return naming.Snake(target.Name) + "_id"
}

// =============================================================================
// Annotations
// =============================================================================

// Annotations holds the relationship annotation lines for both ends of an
// edge. A non-navigable target end stays empty.
type Annotations struct {
	Source []string
	Target []string
}

// AnnotationsFor builds the relationship annotations for an edge exactly as
// downstream code generation expects them. Inheritance contributes a single
// class-level strategy annotation on the parent; the navigable target end
// of the other kinds mirrors the owning side with a mappedBy reference.
func AnnotationsFor(r *diagram.Relationship, target *diagram.Class) Annotations {
	var a Annotations
	if r.Kind == diagram.Inheritance {
		a.Target = append(a.Target, "@Inheritance(strategy = InheritanceType.JOINED)")
		return a
	}
	rel := Classify(r.SourceMultiplicity, r.TargetMultiplicity)
	switch r.Kind {
	case diagram.Association, diagram.Dependency:
		switch rel {
		case O2M:
			a.Source = append(a.Source, "@OneToMany")
			if r.TargetNavigable {
				a.Target = append(a.Target, "@ManyToOne")
			}
		case M2M:
			a.Source = append(a.Source, "@ManyToMany")
			if r.TargetNavigable {
				a.Target = append(a.Target, fmt.Sprintf("@ManyToMany(mappedBy = %q)", SourceFieldName(r, target)))
			}
		case M2O:
			a.Source = append(a.Source, "@ManyToOne")
			if r.TargetNavigable {
				a.Target = append(a.Target, "@OneToMany")
			}
		default:
			a.Source = append(a.Source, "@OneToOne")
			if r.TargetNavigable {
				a.Target = append(a.Target, fmt.Sprintf("@OneToOne(mappedBy = %q)", SourceFieldName(r, target)))
			}
		}
	case diagram.Composition:
		a.Source = append(a.Source, "@OneToMany(cascade = CascadeType.ALL, orphanRemoval = true)")
		if r.TargetNavigable {
			a.Target = append(a.Target, "@ManyToOne")
		}
	case diagram.Aggregation:
		a.Source = append(a.Source, "@OneToMany")
		if r.TargetNavigable {
			a.Target = append(a.Target, "@ManyToOne")
		}
	}
	// LAZY is the annotation default; only an eager policy is spelled out,
	// and only on annotations that already carry arguments.
	if fetch := FetchFor(r.Kind, rel); fetch != Lazy {
		spliceFetch(a.Source, fetch)
		spliceFetch(a.Target, fetch)
	}
	return a
}

// spliceFetch rewrites the last annotation line in place, inserting the
// fetch argument before its closing parenthesis. Lines without arguments
// stay untouched.
func spliceFetch(lines []string, fetch Fetch) {
	if len(lines) == 0 {
		return
	}
	last := len(lines) - 1
	lines[last] = strings.ReplaceAll(lines[last], ")", fmt.Sprintf(", fetch = FetchType.%s)", fetch))
}
