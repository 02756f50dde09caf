package mapping

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/naming"
)

// DefaultPackage is the package assigned to entities whose class carries no
// package of its own.
const DefaultPackage = "com.enterprise.generated.entities"

// inheritanceAnnotation is the class-level strategy emitted on a parent
// class. Parents with several children still carry it once.
const inheritanceAnnotation = "@Inheritance(strategy = InheritanceType.JOINED)"

// Field is the persistence mapping of a single class attribute.
type Field struct {
	Name        string
	Column      string
	Type        string
	PrimaryKey  bool
	Nullable    bool
	Unique      bool
	Length      int
	Precision   int
	Scale       int
	Annotations []string
}

// RelationshipField is the persistence mapping of one navigable end of a
// relationship. The owning side holds the join column; the inverse side
// refers back to it through MappedBy.
type RelationshipField struct {
	Name        string
	Type        string
	TargetClass string
	Rel         Rel
	Annotations []string
	Fetch       Fetch
	Cascade     Cascade
	JoinColumn  string
	MappedBy    string
	Collection  bool
	Owning      bool
}

// EntityDescriptor is the full persistence mapping of one class. Extends
// names the parent class when the class is an inheritance child.
type EntityDescriptor struct {
	ClassName     string
	Package       string
	Table         string
	Extends       string
	Annotations   []string
	Fields        []*Field
	Relationships []*RelationshipField
	Imports       []string
}

// uniqueColumns are attribute names that map to unique columns.
var uniqueColumns = map[string]struct{}{
	"email":    {},
	"username": {},
	"code":     {},
}

// IsEntity reports if a class maps to a persistent entity. Interfaces and
// enums never do; the rest qualify through their stereotype or through an
// "entity" marker in the name.
func IsEntity(c *diagram.Class) bool {
	if c.Kind == diagram.KindInterface || c.Kind == diagram.KindEnum {
		return false
	}
	switch strings.ToLower(c.Stereotype) {
	case "", "entity", "model":
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), "entity")
}

// MapClass builds the persistence descriptor of a single class. The graph
// supplies the relationships the class participates in; the input is not
// modified.
func MapClass(g *diagram.Graph, c *diagram.Class) *EntityDescriptor {
	d := &EntityDescriptor{
		ClassName:   c.Name,
		Package:     c.Package,
		Table:       naming.Snake(c.Name),
		Annotations: []string{"@Entity"},
	}
	if d.Package == "" {
		d.Package = DefaultPackage
	}
	if d.Table != c.Name {
		d.Annotations = append(d.Annotations, fmt.Sprintf("@Table(name = %q)", d.Table))
	}
	for _, a := range c.Attributes {
		d.Fields = append(d.Fields, mapAttribute(a))
	}
	for _, r := range g.Relationships {
		if r.Kind == diagram.Inheritance {
			if r.TargetID == c.ID && !contains(d.Annotations, inheritanceAnnotation) {
				d.Annotations = append(d.Annotations, inheritanceAnnotation)
			}
			if r.SourceID == c.ID && d.Extends == "" {
				if parent := g.ClassByID(r.TargetID); parent != nil {
					d.Extends = parent.Name
				}
			}
			continue
		}
		if !fieldKind(r.Kind) {
			continue
		}
		if r.SourceID == c.ID {
			if f := owningField(g, r); f != nil {
				d.Relationships = append(d.Relationships, f)
			}
		}
		if r.TargetID == c.ID {
			if f := inverseField(g, r); f != nil {
				d.Relationships = append(d.Relationships, f)
			}
		}
	}
	d.Imports = imports(d)
	return d
}

// MapGraph maps every entity class of the graph concurrently and returns
// the descriptors in class order.
func MapGraph(ctx context.Context, g *diagram.Graph) ([]*EntityDescriptor, error) {
	var entities []*diagram.Class
	for _, c := range g.Classes {
		if IsEntity(c) {
			entities = append(entities, c)
		}
	}
	out := make([]*EntityDescriptor, len(entities))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range entities {
		i, c := i, c // capture loop variables for goroutine closures
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = MapClass(g, c)
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fieldKind reports if edges of this kind materialize as entity fields.
// Realization and generalization shape the type hierarchy only.
func fieldKind(kind diagram.RelKind) bool {
	switch kind {
	case diagram.Association, diagram.Aggregation, diagram.Composition, diagram.Dependency:
		return true
	}
	return false
}

func owningField(g *diagram.Graph, r *diagram.Relationship) *RelationshipField {
	target := g.ClassByID(r.TargetID)
	if target == nil {
		return nil
	}
	rel := Classify(r.SourceMultiplicity, r.TargetMultiplicity)
	return &RelationshipField{
		Name:        SourceFieldName(r, target),
		Type:        SourceFieldType(r, target),
		TargetClass: target.Name,
		Rel:         rel,
		Annotations: AnnotationsFor(r, target).Source,
		Fetch:       FetchFor(r.Kind, rel),
		Cascade:     CascadeFor(r.Kind),
		JoinColumn:  JoinColumn(target),
		Collection:  r.TargetMultiplicity.Plural(),
		Owning:      true,
	}
}

func inverseField(g *diagram.Graph, r *diagram.Relationship) *RelationshipField {
	if !r.TargetNavigable {
		return nil
	}
	source := g.ClassByID(r.SourceID)
	target := g.ClassByID(r.TargetID)
	if source == nil || target == nil {
		return nil
	}
	rel := Classify(r.SourceMultiplicity, r.TargetMultiplicity)
	return &RelationshipField{
		Name:        TargetFieldName(r, source),
		Type:        TargetFieldType(r, source),
		TargetClass: source.Name,
		Rel:         rel.Inverse(),
		Annotations: AnnotationsFor(r, target).Target,
		Fetch:       FetchFor(r.Kind, rel.Inverse()),
		MappedBy:    SourceFieldName(r, target),
		Collection:  r.SourceMultiplicity.Plural(),
	}
}

func mapAttribute(a *diagram.Attribute) *Field {
	lname := strings.ToLower(a.Name)
	f := &Field{
		Name:       a.Name,
		Column:     naming.Snake(a.Name),
		Type:       MapType(a.Type),
		PrimaryKey: lname == "id",
		Nullable:   !a.Final,
	}
	if _, ok := uniqueColumns[lname]; ok {
		f.Unique = true
	}
	switch f.Type {
	case "String":
		f.Length = 255
	case "BigDecimal":
		f.Precision, f.Scale = 19, 2
	}
	f.Annotations = fieldAnnotations(a, f)
	return f
}

// fieldAnnotations builds the annotation lines of an attribute in emission
// order: identity first, validation next, timestamp semantics, and the
// column definition last.
func fieldAnnotations(a *diagram.Attribute, f *Field) []string {
	var anns []string
	if f.PrimaryKey {
		anns = append(anns, "@Id", "@GeneratedValue(strategy = GenerationType.IDENTITY)")
	}
	ltype := strings.ToLower(a.Type)
	switch {
	case f.PrimaryKey:
	case strings.Contains(ltype, "string"):
		anns = append(anns, "@NotBlank")
	case ltype == "integer" || ltype == "long" || ltype == "double" || ltype == "float":
		anns = append(anns, "@NotNull")
	}
	lname := strings.ToLower(a.Name)
	switch {
	case strings.HasPrefix(lname, "created"):
		anns = append(anns, "@CreationTimestamp")
	case strings.HasPrefix(lname, "updated"), lname == "modified_date", lname == "last_modified":
		anns = append(anns, "@UpdateTimestamp")
	}
	var props []string
	if !f.Nullable {
		props = append(props, "nullable = false")
	}
	if f.Unique {
		props = append(props, "unique = true")
	}
	if f.Length != 0 && f.Length != 255 {
		props = append(props, fmt.Sprintf("length = %d", f.Length))
	}
	if len(props) > 0 {
		anns = append(anns, "@Column("+strings.Join(props, ", ")+")")
	}
	return anns
}

// imports collects the import lines a descriptor needs, sorted and without
// duplicates.
func imports(d *EntityDescriptor) []string {
	set := map[string]struct{}{
		"javax.persistence.*": {},
	}
	addType := func(t string) {
		switch {
		case t == "LocalDateTime":
			set["java.time.LocalDateTime"] = struct{}{}
		case t == "LocalDate":
			set["java.time.LocalDate"] = struct{}{}
		case t == "LocalTime":
			set["java.time.LocalTime"] = struct{}{}
		case t == "BigDecimal":
			set["java.math.BigDecimal"] = struct{}{}
		case t == "UUID":
			set["java.util.UUID"] = struct{}{}
		case t == "List" || t == "Set" || t == "Map" || strings.HasPrefix(t, "List<"):
			set["java.util.*"] = struct{}{}
		}
	}
	for _, f := range d.Fields {
		addType(f.Type)
		for _, ann := range f.Annotations {
			switch {
			case strings.HasPrefix(ann, "@NotBlank") || strings.HasPrefix(ann, "@NotNull"):
				set["javax.validation.constraints.*"] = struct{}{}
			case ann == "@CreationTimestamp":
				set["org.hibernate.annotations.CreationTimestamp"] = struct{}{}
				set["java.time.LocalDateTime"] = struct{}{}
			case ann == "@UpdateTimestamp":
				set["org.hibernate.annotations.UpdateTimestamp"] = struct{}{}
				set["java.time.LocalDateTime"] = struct{}{}
			}
		}
	}
	for _, r := range d.Relationships {
		addType(r.Type)
	}
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
