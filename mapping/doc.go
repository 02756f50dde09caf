// Package mapping derives persistence-layer metadata from a class diagram:
// per-class entity descriptors, per-edge relationship classification, and a
// relational schema for the mapped entities.
//
// # Relationship Classification
//
// Classify reduces the two endpoint multiplicities to one of four shapes.
// Endpoints with multiplicity 1 or 0..1 count as singular, endpoints with
// 0..*, 1..* or * count as plural:
//
//	Classify(diagram.One, diagram.One)      // O2O
//	Classify(diagram.One, diagram.ZeroMany) // O2M
//	Classify(diagram.OneMany, diagram.One)  // M2O
//	Classify(diagram.Many, diagram.Many)    // M2M
//
// Fetch and cascade policy derive from the edge kind and the shape:
// composition and aggregation load lazily and cascade, collection-valued
// shapes load lazily, and everything else loads eagerly with no cascade.
//
// # Entity Mapping
//
// MapClass combines the type table, the classifier, and the naming rules
// into one descriptor per class:
//
//	desc := mapping.MapClass(g, g.ClassByName("Order"))
//	for _, f := range desc.Fields { ... }
//	for _, r := range desc.Relationships { ... }
//
// MapGraph maps every entity class of a graph concurrently and returns the
// descriptors in graph order. Both are pure: the graph is never mutated,
// and the same input always produces the same output, so generated code is
// reproducible.
//
// # Relational Schema
//
// Tables translates the mapped entities into Atlas table definitions, one
// table per entity plus a join table per many-to-many edge, ready for
// schema diffing or DDL generation by the storage layer.
package mapping
