// Package validate evaluates design rules against diagram graphs and
// produces structured reports.
//
// # Rules
//
// A rule carries its metadata (name, category, severity, suggestion) and
// exactly one implementation: a Go check function, or a Starlark script
// for rules loaded at runtime. The built-in rule set covers naming
// conventions, entity patterns, and hierarchy health:
//
//	engine, err := validate.NewEngine()
//	report, err := engine.Evaluate(ctx, g)
//	for _, r := range report.Failures() {
//		fmt.Println(r.Severity, r.Violations)
//	}
//
// # Failure Isolation
//
// One broken rule never poisons a run. A check that panics, or a script
// that errors or exceeds its budget, yields an error-severity result
// entry for that rule and evaluation moves on.
//
// # Scripted Rules
//
// Scripts receive the diagram as plain data plus a helper namespace:
//
//	violations = []
//	for c in classes:
//	    if not validation_helpers.is_pascal_case(c["name"]):
//	        violations.append("Class '%s' should use PascalCase naming" % c["name"])
//	validation_result = {"is_valid": len(violations) == 0, "violations": violations}
//
// A script that sets no validation_result passes.
package validate
