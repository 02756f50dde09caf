// Package graphql imports GraphQL schema documents as class diagrams.
//
// Object and interface types become classes, enums become enumeration
// classes, and a union becomes an interface realized by its members.
// Fields referencing another imported type become association edges
// whose target multiplicity follows the list and non-null wrappers;
// fields with arguments become methods, with a dependency edge when the
// result is an imported type. Operation roots (Query, Mutation,
// Subscription) and input types describe the API surface rather than
// the domain model and are not imported.
package graphql

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/forma/diagram"
)

// Import parses sdl as a GraphQL schema and builds a class diagram
// named name. Class ids are the type names, so edges in the result can
// be traced back to the schema without a lookup table.
func Import(name, sdl string) (*diagram.Graph, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("graphql: parse schema: %w", err)
	}
	im := &importer{schema: schema, seen: make(map[string]bool)}
	names := make([]string, 0, len(schema.Types))
	for n, def := range schema.Types {
		if def.BuiltIn || skip(schema, def) {
			continue
		}
		names = append(names, n)
		im.seen[n] = true
	}
	sort.Strings(names)
	for _, n := range names {
		im.class(schema.Types[n])
	}
	for _, n := range names {
		im.edges(schema.Types[n])
	}
	g, err := diagram.NewGraph(name, diagram.DiagramClass, im.classes, im.rels)
	if err != nil {
		return nil, fmt.Errorf("graphql: import %s: %w", name, err)
	}
	return g, nil
}

type importer struct {
	schema  *ast.Schema
	seen    map[string]bool
	classes []*diagram.Class
	rels    []*diagram.Relationship
}

// skip reports definitions that carry no domain class: scalars, input
// objects and the operation root types.
func skip(schema *ast.Schema, def *ast.Definition) bool {
	switch def.Kind {
	case ast.Object, ast.Interface, ast.Union, ast.Enum:
	default:
		return true
	}
	for _, root := range []*ast.Definition{schema.Query, schema.Mutation, schema.Subscription} {
		if root != nil && root.Name == def.Name {
			return true
		}
	}
	return false
}

func (im *importer) class(def *ast.Definition) {
	c := &diagram.Class{ID: def.Name, Name: def.Name, Kind: diagram.KindClass}
	switch def.Kind {
	case ast.Interface, ast.Union:
		c.Kind = diagram.KindInterface
	case ast.Enum:
		c.Kind = diagram.KindEnum
		for _, v := range def.EnumValues {
			c.Attributes = append(c.Attributes, &diagram.Attribute{
				Name:       v.Name,
				Type:       def.Name,
				Visibility: diagram.Public,
				Static:     true,
				Final:      true,
			})
		}
	}
	for _, f := range def.Fields {
		if len(f.Arguments) > 0 {
			c.Methods = append(c.Methods, method(f))
			continue
		}
		if im.classTarget(f.Type) != "" {
			continue // recorded as an edge instead
		}
		c.Attributes = append(c.Attributes, &diagram.Attribute{
			Name:       f.Name,
			Type:       attrType(f.Type),
			Visibility: diagram.Public,
		})
	}
	im.classes = append(im.classes, c)
}

func (im *importer) edges(def *ast.Definition) {
	for _, impl := range def.Interfaces {
		if !im.seen[impl] {
			continue
		}
		kind := diagram.Realization
		if def.Kind == ast.Interface {
			kind = diagram.Generalization
		}
		im.rels = append(im.rels, &diagram.Relationship{
			Kind:            kind,
			SourceID:        def.Name,
			TargetID:        impl,
			TargetNavigable: true,
		})
	}
	if def.Kind == ast.Union {
		for _, member := range def.Types {
			if !im.seen[member] {
				continue
			}
			im.rels = append(im.rels, &diagram.Relationship{
				Kind:            diagram.Realization,
				SourceID:        member,
				TargetID:        def.Name,
				TargetNavigable: true,
			})
		}
	}
	for _, f := range def.Fields {
		target := im.classTarget(f.Type)
		if target == "" {
			continue
		}
		kind := diagram.Association
		if len(f.Arguments) > 0 {
			kind = diagram.Dependency
		}
		im.rels = append(im.rels, &diagram.Relationship{
			Kind:               kind,
			SourceID:           def.Name,
			TargetID:           target,
			TargetMultiplicity: multiplicity(f.Type),
			TargetRole:         f.Name,
			TargetNavigable:    true,
		})
	}
}

// classTarget returns the name of the imported class a field type
// refers to, or "" when the field stays an attribute. Enum references
// stay attributes; the enumeration class itself carries the values.
func (im *importer) classTarget(t *ast.Type) string {
	name := leaf(t).NamedType
	if !im.seen[name] || im.schema.Types[name].Kind == ast.Enum {
		return ""
	}
	return name
}

func method(f *ast.FieldDefinition) *diagram.Method {
	m := &diagram.Method{
		Name:       f.Name,
		ReturnType: f.Type.String(),
		Visibility: diagram.Public,
	}
	for _, a := range f.Arguments {
		m.Parameters = append(m.Parameters, &diagram.Parameter{Name: a.Name, Type: a.Type.String()})
	}
	return m
}

func leaf(t *ast.Type) *ast.Type {
	for t.Elem != nil {
		t = t.Elem
	}
	return t
}

// attrType keeps the bare type name for single values and the SDL
// notation for scalar lists.
func attrType(t *ast.Type) string {
	if t.Elem != nil {
		return t.String()
	}
	return t.NamedType
}

// multiplicity translates the wrapper types of a field: a list holds
// any number of targets, a non-null single value exactly one, a
// nullable single value at most one. GraphQL cannot promise a non-empty
// list, so lists never map to 1..*.
func multiplicity(t *ast.Type) diagram.Multiplicity {
	switch {
	case t.Elem != nil:
		return diagram.ZeroMany
	case t.NonNull:
		return diagram.One
	default:
		return diagram.ZeroOne
	}
}
