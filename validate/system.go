package validate

import (
	"fmt"
	"strings"

	"github.com/syssam/forma/diagram"
)

// SystemRules returns the built-in rule set in evaluation order. The
// returned rules are fresh values; callers may deactivate or reorder them
// without affecting other engines.
func SystemRules() []*Rule {
	return []*Rule{
		ClassNamingRule(),
		InterfaceNamingRule(),
		EntityPatternRule(),
		CompositionRule(),
		InheritanceCycleRule(),
		NavigabilityRule(),
		SelfReferenceRule(),
	}
}

// ClassNamingRule warns about classes that are not PascalCase.
func ClassNamingRule() *Rule {
	return &Rule{
		ID:          "class-naming-convention",
		Name:        "Class Naming Convention",
		Description: "Class names follow PascalCase.",
		Type:        NamingConvention,
		Severity:    SeverityWarning,
		Suggestion:  "Use PascalCase for class names (e.g., UserAccount, OrderService)",
		AppliesTo:   TargetClasses,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, c := range g.Classes {
				if !IsPascalCase(c.Name) {
					out = append(out, fmt.Sprintf("Class '%s' should use PascalCase naming", c.Name))
				}
			}
			return out
		},
	}
}

// InterfaceNamingRule nudges interfaces toward the I-prefix or the
// able/Service suffixes.
func InterfaceNamingRule() *Rule {
	return &Rule{
		ID:          "interface-naming-pattern",
		Name:        "Interface Naming Pattern",
		Description: "Interfaces follow common naming patterns.",
		Type:        NamingConvention,
		Severity:    SeverityInfo,
		Suggestion:  `Prefix interfaces with "I" or suffix with "able" or "Service"`,
		AppliesTo:   TargetClasses,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, c := range g.Classes {
				if c.Kind != diagram.KindInterface {
					continue
				}
				if strings.HasPrefix(c.Name, "I") ||
					strings.HasSuffix(c.Name, "able") ||
					strings.HasSuffix(c.Name, "Service") {
					continue
				}
				out = append(out, fmt.Sprintf("Interface '%s' should follow naming patterns", c.Name))
			}
			return out
		},
	}
}

// EntityPatternRule warns about entity-looking classes without an
// identifier attribute.
func EntityPatternRule() *Rule {
	markers := []string{"Entity", "Model", "DO", "PO"}
	return &Rule{
		ID:          "entity-class-pattern",
		Name:        "Entity Class Pattern",
		Description: "Entity classes declare an identifier attribute.",
		Type:        ArchitecturalPattern,
		Severity:    SeverityWarning,
		Suggestion:  "Add an ID field to entity classes for proper persistence mapping",
		AppliesTo:   TargetClasses,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, c := range g.Classes {
				marked := false
				for _, m := range markers {
					if strings.Contains(c.Name, m) {
						marked = true
						break
					}
				}
				if !marked || hasIdentifier(c) {
					continue
				}
				out = append(out, fmt.Sprintf("Entity class '%s' should have an ID field", c.Name))
			}
			return out
		},
	}
}

func hasIdentifier(c *diagram.Class) bool {
	for _, a := range c.Attributes {
		if strings.EqualFold(a.Name, "id") || strings.EqualFold(a.Name, "identifier") {
			return true
		}
	}
	return false
}

// CompositionRule warns about compositions that are plural on both ends.
func CompositionRule() *Rule {
	return &Rule{
		ID:          "composition-relationship-validation",
		Name:        "Composition Relationship Validation",
		Description: "Composition implies exclusive ownership, which many-to-many contradicts.",
		Type:        DesignPrinciple,
		Severity:    SeverityWarning,
		Suggestion:  "Consider using aggregation for many-to-many relationships",
		AppliesTo:   TargetRelationships,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, r := range g.Relationships {
				if r.Kind == diagram.Composition &&
					r.SourceMultiplicity.Plural() && r.TargetMultiplicity.Plural() {
					out = append(out, "Many-to-many composition may indicate design issue")
				}
			}
			return out
		},
	}
}

// InheritanceCycleRule rejects cyclic class hierarchies.
func InheritanceCycleRule() *Rule {
	return &Rule{
		ID:          "cyclic-inheritance-check",
		Name:        "Cyclic Inheritance Check",
		Description: "The inheritance hierarchy forms no cycle.",
		Type:        DesignPrinciple,
		Severity:    SeverityError,
		Suggestion:  "Remove cycles in inheritance hierarchy to ensure proper class design",
		AppliesTo:   TargetRelationships,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			if diagram.HasInheritanceCycle(g) {
				return []string{"Cyclic inheritance detected in class hierarchy"}
			}
			return nil
		},
	}
}

// NavigabilityRule warns about relationships navigable from neither end.
func NavigabilityRule() *Rule {
	return &Rule{
		ID:          "navigability-check",
		Name:        "Relationship Navigability",
		Description: "A relationship should be navigable from at least one end.",
		Type:        DesignPrinciple,
		Severity:    SeverityWarning,
		Suggestion:  "Make at least one end navigable or remove the relationship",
		AppliesTo:   TargetRelationships,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, r := range g.Relationships {
				if !r.SourceNavigable && !r.TargetNavigable {
					out = append(out, "Non-navigable relationship may be unnecessary")
				}
			}
			return out
		},
	}
}

// SelfReferenceRule flags classes related to themselves. Self references
// are legal and map fine, so this stays a warning for review.
func SelfReferenceRule() *Rule {
	return &Rule{
		ID:          "self-reference-check",
		Name:        "Self Reference Check",
		Description: "Self-referential relationships deserve a second look.",
		Type:        DesignPrinciple,
		Severity:    SeverityWarning,
		Suggestion:  "Confirm the self-reference is intentional (e.g., tree or hierarchy structures)",
		AppliesTo:   TargetRelationships,
		Diagrams:    []diagram.DiagramKind{diagram.DiagramClass},
		Active:      true,
		System:      true,
		Check: func(g *diagram.Graph) []string {
			var out []string
			for _, r := range g.Relationships {
				if !r.SelfLoop() {
					continue
				}
				name := r.SourceID
				if c := g.ClassByID(r.SourceID); c != nil {
					name = c.Name
				}
				out = append(out, fmt.Sprintf("Class '%s' has a self-referential relationship", name))
			}
			return out
		},
	}
}
