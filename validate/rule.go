package validate

import (
	"errors"
	"fmt"

	"github.com/syssam/forma/diagram"
)

// Severity grades a rule finding.
type Severity string

// Severities, strongest first.
const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityInfo       Severity = "info"
	SeveritySuggestion Severity = "suggestion"
)

// Valid reports if s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeveritySuggestion:
		return true
	}
	return false
}

// RuleType categorizes what a rule is about.
type RuleType string

// Rule categories.
const (
	NamingConvention     RuleType = "naming_convention"
	ArchitecturalPattern RuleType = "architectural_pattern"
	DesignPrinciple      RuleType = "design_principle"
	CodeQuality          RuleType = "code_quality"
	Security             RuleType = "security"
	Performance          RuleType = "performance"
)

// Target scopes a rule to the elements it inspects. The engine skips a
// rule whose target has no elements in the graph.
type Target string

// Rule targets.
const (
	TargetDiagram       Target = "diagram"
	TargetClasses       Target = "classes"
	TargetRelationships Target = "relationships"
)

// CheckFunc inspects a graph and returns one violation message per
// finding. An empty result means the rule passes.
type CheckFunc func(*diagram.Graph) []string

// Rule is one design check. Exactly one of Check and Script carries the
// implementation: Check for rules compiled into the binary, Script for
// rules loaded at runtime. An empty Diagrams list applies the rule to
// every diagram kind.
type Rule struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Type        RuleType              `json:"rule_type" yaml:"rule_type"`
	Severity    Severity              `json:"severity" yaml:"severity"`
	Suggestion  string                `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	AppliesTo   Target                `json:"applies_to,omitempty" yaml:"applies_to,omitempty"`
	Diagrams    []diagram.DiagramKind `json:"applicable_diagrams,omitempty" yaml:"applicable_diagrams,omitempty"`
	Active      bool                  `json:"is_active" yaml:"is_active"`
	System      bool                  `json:"is_system,omitempty" yaml:"-"`
	Script      string                `json:"script,omitempty" yaml:"script,omitempty"`
	Check       CheckFunc             `json:"-" yaml:"-"`
}

// Rule configuration errors.
var (
	ErrRuleName           = errors.New("validate: rule name is required")
	ErrNoImplementation   = errors.New("validate: rule has neither a check function nor a script")
	ErrDualImplementation = errors.New("validate: rule has both a check function and a script")
	ErrDiagramKind        = errors.New("validate: rule names an unknown diagram kind")
)

// validateRule checks that a rule is well formed before it enters an
// engine.
func validateRule(r *Rule) error {
	switch {
	case r.Name == "":
		return ErrRuleName
	case r.Check == nil && r.Script == "":
		return ErrNoImplementation
	case r.Check != nil && r.Script != "":
		return ErrDualImplementation
	}
	for _, k := range r.Diagrams {
		if !k.Valid() {
			return fmt.Errorf("%w: %q", ErrDiagramKind, k)
		}
	}
	return nil
}
