// Package plantuml renders class diagrams as PlantUML text.
//
// The output is a plain @startuml document: one block per class with
// its attributes and methods, then one line per relationship with the
// arrow, multiplicities and role the edge carries. Identifiers that are
// not simple words are quoted.
package plantuml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/forma/diagram"
)

// Export renders g as a PlantUML class diagram.
func Export(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	if g.Name != "" {
		fmt.Fprintf(&b, "title %s\n", g.Name)
	}
	for _, c := range g.Classes {
		b.WriteByte('\n')
		writeClass(&b, c)
	}
	if len(g.Relationships) > 0 {
		b.WriteByte('\n')
		for _, r := range g.Relationships {
			writeRelationship(&b, g, r)
		}
	}
	b.WriteString("@enduml\n")
	return b.String()
}

func writeClass(b *strings.Builder, c *diagram.Class) {
	b.WriteString(keyword(c.Kind))
	b.WriteByte(' ')
	b.WriteString(ident(c.Name))
	if c.Kind == diagram.KindRecord {
		b.WriteString(" <<record>>")
	}
	if c.Stereotype != "" {
		fmt.Fprintf(b, " <<%s>>", c.Stereotype)
	}
	if len(c.Attributes) == 0 && len(c.Methods) == 0 {
		b.WriteByte('\n')
		return
	}
	b.WriteString(" {\n")
	for _, a := range c.Attributes {
		writeAttribute(b, c.Kind, a)
	}
	for _, m := range c.Methods {
		writeMethod(b, m)
	}
	b.WriteString("}\n")
}

func writeAttribute(b *strings.Builder, kind diagram.ClassKind, a *diagram.Attribute) {
	if kind == diagram.KindEnum {
		// Enumeration literals list bare names.
		fmt.Fprintf(b, "  %s\n", a.Name)
		return
	}
	b.WriteString("  ")
	if a.Static {
		b.WriteString("{static} ")
	}
	b.WriteString(visibility(a.Visibility))
	b.WriteString(a.Name)
	if a.Type != "" {
		fmt.Fprintf(b, " : %s", a.Type)
	}
	if a.Default != "" {
		fmt.Fprintf(b, " = %s", a.Default)
	}
	if a.Final {
		b.WriteString(" {readOnly}")
	}
	b.WriteByte('\n')
}

func writeMethod(b *strings.Builder, m *diagram.Method) {
	b.WriteString("  ")
	if m.Static {
		b.WriteString("{static} ")
	}
	if m.Abstract {
		b.WriteString("{abstract} ")
	}
	b.WriteString(visibility(m.Visibility))
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != "" {
			fmt.Fprintf(b, " : %s", p.Type)
		}
	}
	b.WriteByte(')')
	if m.ReturnType != "" {
		fmt.Fprintf(b, " : %s", m.ReturnType)
	}
	b.WriteByte('\n')
}

func writeRelationship(b *strings.Builder, g *diagram.Graph, r *diagram.Relationship) {
	source, target := g.ClassByID(r.SourceID), g.ClassByID(r.TargetID)
	if source == nil || target == nil {
		return
	}
	labeled := withMultiplicities(r.Kind)
	b.WriteString(ident(source.Name))
	if labeled && r.SourceMultiplicity != "" {
		fmt.Fprintf(b, " %q", string(r.SourceMultiplicity))
	}
	b.WriteByte(' ')
	b.WriteString(arrow(r))
	b.WriteByte(' ')
	if labeled && r.TargetMultiplicity != "" {
		fmt.Fprintf(b, "%q ", string(r.TargetMultiplicity))
	}
	b.WriteString(ident(target.Name))
	if role := edgeRole(r); role != "" {
		fmt.Fprintf(b, " : %s", role)
	}
	b.WriteByte('\n')
}

func keyword(k diagram.ClassKind) string {
	switch k {
	case diagram.KindInterface:
		return "interface"
	case diagram.KindEnum:
		return "enum"
	case diagram.KindAbstract:
		return "abstract class"
	default:
		return "class"
	}
}

func visibility(v diagram.Visibility) string {
	switch v {
	case diagram.Public:
		return "+"
	case diagram.Protected:
		return "#"
	case diagram.Package:
		return "~"
	default:
		return "-"
	}
}

// arrow picks the PlantUML edge: the diamond sits at the owning source
// of an aggregation or composition, the triangle points at the parent
// or contract, and plain associations draw their navigable ends.
func arrow(r *diagram.Relationship) string {
	switch r.Kind {
	case diagram.Inheritance, diagram.Generalization:
		return "--|>"
	case diagram.Realization:
		return "..|>"
	case diagram.Dependency:
		return "..>"
	case diagram.Composition:
		return "*--"
	case diagram.Aggregation:
		return "o--"
	}
	switch {
	case r.SourceNavigable && r.TargetNavigable:
		return "<-->"
	case r.SourceNavigable:
		return "<--"
	case r.TargetNavigable:
		return "-->"
	default:
		return "--"
	}
}

func withMultiplicities(k diagram.RelKind) bool {
	switch k {
	case diagram.Association, diagram.Aggregation, diagram.Composition:
		return true
	}
	return false
}

func edgeRole(r *diagram.Relationship) string {
	if !withMultiplicities(r.Kind) {
		return ""
	}
	if r.TargetRole != "" {
		return r.TargetRole
	}
	return r.SourceRole
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func ident(name string) string {
	if identRE.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}
