// Package forma turns UML class diagrams into persistence metadata.
//
// The diagram package models the graphs, naming and mapping derive
// relational names and JPA-style annotations from them, validate runs
// design rules, and version diffs and snapshots revisions. This package
// ties those pieces together with the contracts a deployment
// implements: where graphs live (GraphSource), where history goes
// (VersionStore) and where the active rule set comes from (RuleSource).
// Check and Snapshot are the two pipeline entry points built on those
// contracts; store.Store and rulestore.Store are the bundled
// implementations.
package forma

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/validate"
	"github.com/syssam/forma/version"
)

// GraphSource supplies the current graph of a diagram.
//
// A missing diagram is reported with an error matching ErrNotFound.
type GraphSource interface {
	Graph(ctx context.Context, diagramID string) (*diagram.Graph, error)
}

// VersionStore persists and retrieves diagram version history. Version
// numbers are strictly increasing per diagram starting at 1; deleting a
// diagram deletes its versions.
//
// Missing diagrams and versions are reported with errors matching
// ErrNotFound, number collisions between concurrent writers with
// ErrConflict.
type VersionStore interface {
	CreateVersion(ctx context.Context, v *version.Version) error
	Version(ctx context.Context, diagramID string, number int) (*version.Version, error)
	LatestVersion(ctx context.Context, diagramID string) (*version.Version, error)
	Versions(ctx context.Context, diagramID string) ([]*version.Version, error)
	DeleteDiagram(ctx context.Context, id string) error
}

// RuleSource supplies the user-defined validation rules as an immutable
// snapshot per call. The engine contributes the built-in system rules
// itself.
type RuleSource interface {
	Rules(ctx context.Context) ([]*validate.Rule, error)
}

// Check loads the diagram's current graph and evaluates it against the
// system rules plus the rules supplied by rules, which may be nil.
// Engine options such as validate.WithoutSystemRules pass through opts.
func Check(ctx context.Context, graphs GraphSource, rules RuleSource, diagramID string, opts ...validate.Option) (*validate.Report, error) {
	g, err := graphs.Graph(ctx, diagramID)
	if err != nil {
		return nil, err
	}
	if rules != nil {
		loaded, err := rules.Rules(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, validate.WithRules(loaded...))
	}
	eng, err := validate.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	return eng.Evaluate(ctx, g)
}

// Snapshot records the diagram's current graph as a new version unless
// it is structurally identical to the latest stored one, in which case
// it returns an error matching ErrUnchanged. The first snapshot of a
// diagram has no parent.
func Snapshot(ctx context.Context, graphs GraphSource, versions VersionStore, diagramID string, opts ...version.Option) (*version.Version, error) {
	g, err := graphs.Graph(ctx, diagramID)
	if err != nil {
		return nil, err
	}
	parent, err := versions.LatestVersion(ctx, diagramID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if parent != nil && version.Diff(parent.Graph, g).Empty() {
		return nil, fmt.Errorf("diagram %s: %w", diagramID, ErrUnchanged)
	}
	v := version.NewVersion(g, parent, opts...)
	v.DiagramID = diagramID
	if err := versions.CreateVersion(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
