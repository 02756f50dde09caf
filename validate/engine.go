package validate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/forma/diagram"
)

// Defaults for scripted rule budgets.
const (
	DefaultScriptTimeout = 5 * time.Second
	DefaultScriptSteps   = 500_000
)

// recoverySuggestion is attached to results of rules whose implementation
// broke during a run.
const recoverySuggestion = "Please contact administrator about this validation rule"

// Engine evaluates an ordered rule set against graphs. The zero value is
// not usable; construct engines with NewEngine.
type Engine struct {
	rules         []*Rule
	noSystem      bool
	scriptTimeout time.Duration
	scriptSteps   uint64
}

// Option configures an engine.
type Option func(*Engine) error

// WithRules appends custom rules after the built-in set.
func WithRules(rules ...*Rule) Option {
	return func(e *Engine) error {
		for _, r := range rules {
			if err := e.AddRule(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithoutSystemRules builds an engine holding only the rules given
// through WithRules or AddRule.
func WithoutSystemRules() Option {
	return func(e *Engine) error {
		e.noSystem = true
		return nil
	}
}

// WithScriptTimeout bounds the wall-clock time of each scripted rule.
func WithScriptTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		if d <= 0 {
			return fmt.Errorf("validate: script timeout must be positive, got %v", d)
		}
		e.scriptTimeout = d
		return nil
	}
}

// WithScriptSteps bounds the Starlark execution steps of each scripted
// rule. Zero removes the bound.
func WithScriptSteps(n uint64) Option {
	return func(e *Engine) error {
		e.scriptSteps = n
		return nil
	}
}

// NewEngine builds an engine carrying the built-in rules followed by any
// rules the options add.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		scriptTimeout: DefaultScriptTimeout,
		scriptSteps:   DefaultScriptSteps,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if !e.noSystem {
		e.rules = append(SystemRules(), e.rules...)
	}
	return e, nil
}

// AddRule appends a rule to the evaluation order. A rule without an id
// gets a generated one.
func (e *Engine) AddRule(r *Rule) error {
	if err := validateRule(r); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	e.rules = append(e.rules, r)
	return nil
}

// Rules returns the evaluation order.
func (e *Engine) Rules() []*Rule {
	return e.rules
}

// Evaluate runs every active rule against the graph and returns one
// result per rule run. Rules limited to other diagram kinds, or scoped
// to classes or relationships the graph does not have, are skipped.
// Evaluation stops early only when the context is done; rule failures
// and even broken rule implementations are reported in the results
// instead.
func (e *Engine) Evaluate(ctx context.Context, g *diagram.Graph) (*Report, error) {
	report := &Report{GeneratedAt: time.Now()}
	for _, r := range e.rules {
		if !r.Active || skipKind(r.Diagrams, g.Kind) || skipTarget(r.AppliesTo, g) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Results = append(report.Results, e.evalRule(ctx, r, g))
	}
	return report, nil
}

func skipKind(kinds []diagram.DiagramKind, k diagram.DiagramKind) bool {
	if len(kinds) == 0 {
		return false
	}
	for _, dk := range kinds {
		if dk == k {
			return false
		}
	}
	return true
}

func skipTarget(t Target, g *diagram.Graph) bool {
	switch t {
	case TargetClasses:
		return len(g.Classes) == 0
	case TargetRelationships:
		return len(g.Relationships) == 0
	}
	return false
}

func (e *Engine) evalRule(ctx context.Context, r *Rule, g *diagram.Graph) *Result {
	res := &Result{
		RuleID:   r.ID,
		RuleName: r.Name,
		RuleType: r.Type,
		Severity: r.Severity,
		Valid:    true,
	}
	valid, violations, err := e.run(ctx, r, g)
	if err != nil {
		res.Severity = SeverityError
		res.Valid = false
		res.Violations = []string{"Rule execution error: " + err.Error()}
		res.Suggestion = recoverySuggestion
		return res
	}
	res.Valid = valid
	res.Violations = violations
	if !valid {
		res.Suggestion = r.Suggestion
	}
	return res
}

func (e *Engine) run(ctx context.Context, r *Rule, g *diagram.Graph) (bool, []string, error) {
	if r.Check != nil {
		return safeCheck(r.Check, g)
	}
	return e.runScript(ctx, r, g)
}

// safeCheck wraps a check function with recover so a broken rule cannot
// take down the evaluation.
func safeCheck(check CheckFunc, g *diagram.Graph) (valid bool, violations []string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("check panics: %v", v)
			valid = false
			violations = nil
		}
	}()
	violations = check(g)
	return len(violations) == 0, violations, nil
}
