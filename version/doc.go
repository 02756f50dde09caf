// Package version provides snapshot history for diagrams: numbered,
// immutable captures of a graph, structural comparison between any two
// captures, and content statistics.
//
// # Snapshots
//
// A Version owns a deep copy of the graph it captures, so later edits to
// the live diagram never leak into history:
//
//	v1 := version.NewVersion(g, nil)
//	v2 := version.NewVersion(g, v1, version.WithSummary("add billing"))
//
// Numbers grow by one from the parent; the first capture is 1.
//
// # Comparison
//
// Diff matches elements by id and reports added, removed, and modified
// classes and relationships. Attribute and method order inside a class is
// insignificant; reordering them is not a modification. Compare orders two
// versions so the lower number is always the base:
//
//	base, target, changes := version.Compare(v2, v1)
//	for _, c := range changes.List() {
//		fmt.Println(c.Type, c.ElementID)
//	}
package version
