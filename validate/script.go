package validate

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/syssam/forma/diagram"
)

// runScript executes a rule's Starlark source against the graph. The
// script sees the diagram as plain data (classes, relationships) plus the
// validation_helpers namespace, and reports through a validation_result
// global:
//
//	validation_result = {"is_valid": False, "violations": ["..."]}
//
// A script that sets no validation_result passes. Each run is bounded by
// the engine's wall-clock timeout and execution-step budget.
func (e *Engine) runScript(ctx context.Context, r *Rule, g *diagram.Graph) (bool, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.scriptTimeout)
	defer cancel()
	thread := &starlark.Thread{
		Name:  r.ID,
		Print: func(*starlark.Thread, string) {},
	}
	if e.scriptSteps > 0 {
		thread.SetMaxExecutionSteps(e.scriptSteps)
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()
	globals, err := starlark.ExecFile(thread, r.ID+".star", r.Script, scriptEnv(g))
	if err != nil {
		return false, nil, err
	}
	return scriptResult(globals)
}

func scriptResult(globals starlark.StringDict) (bool, []string, error) {
	v, ok := globals["validation_result"]
	if !ok {
		return true, nil, nil
	}
	result, ok := v.(*starlark.Dict)
	if !ok {
		return false, nil, fmt.Errorf("validation_result must be a dict, got %s", v.Type())
	}
	valid := true
	if iv, found, _ := result.Get(starlark.String("is_valid")); found {
		valid = bool(iv.Truth())
	}
	var violations []string
	lv, found, _ := result.Get(starlark.String("violations"))
	if found && lv != starlark.None {
		iter := starlark.Iterate(lv)
		if iter == nil {
			return false, nil, fmt.Errorf("violations must be iterable, got %s", lv.Type())
		}
		defer iter.Done()
		var el starlark.Value
		for iter.Next(&el) {
			if s, ok := starlark.AsString(el); ok {
				violations = append(violations, s)
			} else {
				violations = append(violations, el.String())
			}
		}
	}
	return valid, violations, nil
}

// scriptEnv converts the graph into the frozen predeclared environment
// scripts run against.
func scriptEnv(g *diagram.Graph) starlark.StringDict {
	var (
		classVals = make([]starlark.Value, len(g.Classes))
		relVals   = make([]starlark.Value, len(g.Relationships))
		byName    = make(map[string]starlark.Value, len(g.Classes))
	)
	for i, c := range g.Classes {
		cv := classValue(c)
		classVals[i] = cv
		if _, ok := byName[c.Name]; !ok {
			byName[c.Name] = cv
		}
	}
	for i, r := range g.Relationships {
		relVals[i] = relationshipValue(r)
	}
	helpers := starlarkstruct.FromStringDict(starlark.String("validation_helpers"), starlark.StringDict{
		"is_pascal_case": stringPredicate("is_pascal_case", IsPascalCase),
		"is_camel_case":  stringPredicate("is_camel_case", IsCamelCase),
		"is_snake_case":  stringPredicate("is_snake_case", IsSnakeCase),
		"has_pattern": starlark.NewBuiltin("has_pattern", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var s, pattern string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &s, &pattern); err != nil {
				return nil, err
			}
			return starlark.Bool(HasPattern(s, pattern)), nil
		}),
		"count_classes":       intBuiltin("count_classes", len(g.Classes)),
		"count_relationships": intBuiltin("count_relationships", len(g.Relationships)),
		"get_class_by_name": starlark.NewBuiltin("get_class_by_name", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
				return nil, err
			}
			if v, ok := byName[name]; ok {
				return v, nil
			}
			return starlark.None, nil
		}),
		"get_relationships_for_class": starlark.NewBuiltin("get_relationships_for_class", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var id string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &id); err != nil {
				return nil, err
			}
			var out []starlark.Value
			for i, r := range g.Relationships {
				if r.SourceID == id || r.TargetID == id {
					out = append(out, relVals[i])
				}
			}
			return starlark.NewList(out), nil
		}),
	})
	env := starlark.StringDict{
		"classes":            starlark.NewList(classVals),
		"relationships":      starlark.NewList(relVals),
		"validation_helpers": helpers,
	}
	for _, v := range env {
		v.Freeze()
	}
	return env
}

func classValue(c *diagram.Class) *starlark.Dict {
	d := starlark.NewDict(7)
	dictSet(d, "id", starlark.String(c.ID))
	dictSet(d, "name", starlark.String(c.Name))
	dictSet(d, "package", starlark.String(c.Package))
	dictSet(d, "kind", starlark.String(string(c.Kind)))
	dictSet(d, "stereotype", starlark.String(c.Stereotype))
	attrs := make([]starlark.Value, len(c.Attributes))
	for i, a := range c.Attributes {
		ad := starlark.NewDict(6)
		dictSet(ad, "name", starlark.String(a.Name))
		dictSet(ad, "type", starlark.String(a.Type))
		dictSet(ad, "visibility", starlark.String(string(a.Visibility)))
		dictSet(ad, "is_static", starlark.Bool(a.Static))
		dictSet(ad, "is_final", starlark.Bool(a.Final))
		dictSet(ad, "default", starlark.String(a.Default))
		attrs[i] = ad
	}
	dictSet(d, "attributes", starlark.NewList(attrs))
	methods := make([]starlark.Value, len(c.Methods))
	for i, m := range c.Methods {
		md := starlark.NewDict(6)
		dictSet(md, "name", starlark.String(m.Name))
		dictSet(md, "return_type", starlark.String(m.ReturnType))
		dictSet(md, "visibility", starlark.String(string(m.Visibility)))
		dictSet(md, "is_static", starlark.Bool(m.Static))
		dictSet(md, "is_abstract", starlark.Bool(m.Abstract))
		params := make([]starlark.Value, len(m.Parameters))
		for j, p := range m.Parameters {
			pd := starlark.NewDict(2)
			dictSet(pd, "name", starlark.String(p.Name))
			dictSet(pd, "type", starlark.String(p.Type))
			params[j] = pd
		}
		dictSet(md, "parameters", starlark.NewList(params))
		methods[i] = md
	}
	dictSet(d, "methods", starlark.NewList(methods))
	return d
}

func relationshipValue(r *diagram.Relationship) *starlark.Dict {
	d := starlark.NewDict(10)
	dictSet(d, "id", starlark.String(r.ID))
	dictSet(d, "kind", starlark.String(string(r.Kind)))
	dictSet(d, "source_id", starlark.String(r.SourceID))
	dictSet(d, "target_id", starlark.String(r.TargetID))
	dictSet(d, "source_multiplicity", starlark.String(string(r.SourceMultiplicity)))
	dictSet(d, "target_multiplicity", starlark.String(string(r.TargetMultiplicity)))
	dictSet(d, "source_role", starlark.String(r.SourceRole))
	dictSet(d, "target_role", starlark.String(r.TargetRole))
	dictSet(d, "source_navigable", starlark.Bool(r.SourceNavigable))
	dictSet(d, "target_navigable", starlark.Bool(r.TargetNavigable))
	return d
}

func stringPredicate(name string, fn func(string) bool) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var s string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
			return nil, err
		}
		return starlark.Bool(fn(s)), nil
	})
}

func intBuiltin(name string, n int) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return starlark.MakeInt(n), nil
	})
}

// dictSet inserts a constant string key; insertion on a fresh dict cannot
// fail.
func dictSet(d *starlark.Dict, key string, v starlark.Value) {
	_ = d.SetKey(starlark.String(key), v)
}
