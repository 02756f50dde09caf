package diagram

import (
	"github.com/google/uuid"
)

// Graph is the unit of work for every engine in this module: the classes
// and relationships of one UML diagram. A Graph is treated as immutable by
// all consumers; use Clone before mutating a shared instance.
type Graph struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Kind          DiagramKind     `json:"kind"`
	Classes       []*Class        `json:"classes"`
	Relationships []*Relationship `json:"relationships"`
}

// Class is a single class node in the diagram.
type Class struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Package    string       `json:"package,omitempty"`
	Kind       ClassKind    `json:"kind"`
	Stereotype string       `json:"stereotype,omitempty"`
	Attributes []*Attribute `json:"attributes"`
	Methods    []*Method    `json:"methods"`
}

// Attribute is a typed member of a class.
type Attribute struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Visibility Visibility `json:"visibility"`
	Static     bool       `json:"is_static"`
	Final      bool       `json:"is_final"`
	Default    string     `json:"default,omitempty"`
}

// Method is an operation declared on a class. Parameter order is part of
// the method signature and therefore significant.
type Method struct {
	Name       string       `json:"name"`
	ReturnType string       `json:"return_type"`
	Visibility Visibility   `json:"visibility"`
	Parameters []*Parameter `json:"parameters"`
	Static     bool         `json:"is_static"`
	Abstract   bool         `json:"is_abstract"`
}

// Parameter is a named, typed method parameter.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Relationship is an edge between two classes. Source and target reference
// classes of the same graph by id. A self-loop (source equals target) is a
// legal edge; validation rules flag it instead of the constructor.
type Relationship struct {
	ID                 string       `json:"id"`
	Kind               RelKind      `json:"kind"`
	SourceID           string       `json:"source_id"`
	TargetID           string       `json:"target_id"`
	SourceMultiplicity Multiplicity `json:"source_multiplicity"`
	TargetMultiplicity Multiplicity `json:"target_multiplicity"`
	SourceRole         string       `json:"source_role,omitempty"`
	TargetRole         string       `json:"target_role,omitempty"`
	SourceNavigable    bool         `json:"source_navigable"`
	TargetNavigable    bool         `json:"target_navigable"`
}

// NewGraph builds a validated graph from the given elements. Elements with
// an empty id are assigned a fresh one, empty kinds and multiplicities are
// defaulted, and the result is checked for referential integrity.
func NewGraph(name string, kind DiagramKind, classes []*Class, rels []*Relationship) (*Graph, error) {
	g := &Graph{
		ID:            uuid.NewString(),
		Name:          name,
		Kind:          kind,
		Classes:       classes,
		Relationships: rels,
	}
	if g.Kind == "" {
		g.Kind = DiagramClass
	}
	g.normalize()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// normalize assigns generated ids and fills defaulted enum values in place.
func (g *Graph) normalize() {
	for _, c := range g.Classes {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Kind == "" {
			c.Kind = KindClass
		}
		for _, a := range c.Attributes {
			if a.Visibility == "" {
				a.Visibility = Private
			}
		}
		for _, m := range c.Methods {
			if m.Visibility == "" {
				m.Visibility = Public
			}
		}
	}
	for _, r := range g.Relationships {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Kind == "" {
			r.Kind = Association
		}
		if r.SourceMultiplicity == "" {
			r.SourceMultiplicity = One
		}
		if r.TargetMultiplicity == "" {
			r.TargetMultiplicity = One
		}
	}
}

// ClassByID returns the class with the given id, or nil.
func (g *Graph) ClassByID(id string) *Class {
	for _, c := range g.Classes {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ClassByName returns the first class with the given name, or nil.
func (g *Graph) ClassByName(name string) *Class {
	for _, c := range g.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RelationshipsFor returns all relationships the class participates in,
// as source or as target, in graph order.
func (g *Graph) RelationshipsFor(classID string) []*Relationship {
	var rels []*Relationship
	for _, r := range g.Relationships {
		if r.SourceID == classID || r.TargetID == classID {
			rels = append(rels, r)
		}
	}
	return rels
}

// Attribute returns the class attribute with the given name, or nil.
func (c *Class) Attribute(name string) *Attribute {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Method returns the first class method with the given name, or nil.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// SelfLoop reports if the relationship connects a class to itself.
func (r *Relationship) SelfLoop() bool {
	return r.SourceID == r.TargetID
}
