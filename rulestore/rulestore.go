// Package rulestore loads validation rules from YAML files and serves
// them as immutable snapshots. A store can watch its directory and
// reload edited rule packs without interrupting evaluations in flight.
//
// A rule pack is a YAML document holding a rules list:
//
//	rules:
//	  - id: service-suffix
//	    name: Service Suffix
//	    rule_type: naming_convention
//	    severity: info
//	    applies_to: classes
//	    applicable_diagrams: [class]
//	    script: |
//	      violations = []
//	      for c in classes:
//	          if c["stereotype"] == "service" and not c["name"].endswith("Service"):
//	              violations.append("Class '%s' should end with Service" % c["name"])
//	      validation_result = {"is_valid": len(violations) == 0, "violations": violations}
//
// Rules default to active with warning severity; file rules carry
// scripts, never compiled check functions. The store serves only the
// rules it loaded. The engine contributes the built-in system set.
package rulestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/syssam/forma/validate"
)

// Store serves rule snapshots loaded from a directory of YAML packs.
type Store struct {
	dir      string
	onReload func(error)

	mu    sync.RWMutex
	rules []*validate.Rule
}

// Option configures a store.
type Option func(*Store) error

// WithReloadHook registers fn to run after every reload attempt, with
// the load error or nil. The hook must be safe for concurrent use; it
// runs on the watcher goroutine.
func WithReloadHook(fn func(error)) Option {
	return func(s *Store) error {
		s.onReload = fn
		return nil
	}
}

// Open loads every rule pack under dir. Files are read in name order;
// rule order follows file order.
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{dir: dir}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	rules, err := loadDir(dir)
	if err != nil {
		return nil, err
	}
	s.rules = rules
	return s, nil
}

// Rules returns the current snapshot. The returned slice is the
// caller's own; reloads never mutate it.
func (s *Store) Rules(ctx context.Context) ([]*validate.Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*validate.Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

// reload swaps in a freshly loaded rule set. A load failure keeps the
// last good snapshot in place.
func (s *Store) reload() {
	rules, err := loadDir(s.dir)
	if err != nil {
		s.notify(err)
		return
	}
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	s.notify(nil)
}

func (s *Store) notify(err error) {
	if s.onReload != nil {
		s.onReload(err)
	}
}

// ruleFile is the pack document shape. Entries decode lazily so each
// rule can start from its defaults.
type ruleFile struct {
	Rules []yaml.Node `yaml:"rules"`
}

func loadDir(dir string) ([]*validate.Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("rulestore: read %s: %w", dir, err)
	}
	var rules []*validate.Rule
	for _, entry := range entries {
		if entry.IsDir() || !ruleFileName(entry.Name()) {
			continue
		}
		loaded, err := loadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		rules = append(rules, loaded...)
	}
	return rules, nil
}

func loadFile(path string) ([]*validate.Rule, error) {
	name := filepath.Base(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulestore: read %s: %w", name, err)
	}
	var f ruleFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("rulestore: parse %s: %w", name, err)
	}
	rules := make([]*validate.Rule, 0, len(f.Rules))
	for i, node := range f.Rules {
		r := &validate.Rule{
			Active:   true,
			Severity: validate.SeverityWarning,
		}
		if err := node.Decode(r); err != nil {
			return nil, fmt.Errorf("rulestore: parse %s rule %d: %w", name, i, err)
		}
		if err := checkRule(r); err != nil {
			return nil, fmt.Errorf("rulestore: %s rule %d: %w", name, i, err)
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func checkRule(r *validate.Rule) error {
	switch {
	case r.Name == "":
		return validate.ErrRuleName
	case r.Script == "":
		return validate.ErrNoImplementation
	case !r.Severity.Valid():
		return fmt.Errorf("unknown severity %q", r.Severity)
	}
	for _, k := range r.Diagrams {
		if !k.Valid() {
			return fmt.Errorf("unknown diagram kind %q", k)
		}
	}
	return nil
}

func ruleFileName(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
