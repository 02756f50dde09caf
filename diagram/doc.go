// Package diagram provides the graph representation of a UML class diagram.
//
// This package is responsible for building and validating the structure that
// the rest of forma operates on: classes with their attributes and methods,
// and the relationships that connect them. It serves as the intermediate
// representation between whatever storage or transport format a diagram
// arrives in and the mapping, diffing, and validation engines.
//
// # Graph Structure
//
// The Graph type holds all elements of a single diagram:
//
//	type Graph struct {
//	    ID            string          // Diagram identity
//	    Name          string          // Display name
//	    Kind          DiagramKind     // class, sequence, usecase, ...
//	    Classes       []*Class        // All classes in the diagram
//	    Relationships []*Relationship // All edges between classes
//	}
//
// # Class Representation
//
// Each Class represents one node in the diagram:
//
//	type Class struct {
//	    Name       string       // Class name (e.g., "User")
//	    Kind       ClassKind    // class, abstract_class, interface, enum, record
//	    Attributes []*Attribute // Typed attributes with visibility
//	    Methods    []*Method    // Methods with parameters
//	}
//
// # Relationship Representation
//
// Relationships carry a semantic kind and a multiplicity, role name, and
// navigability flag per endpoint:
//
//   - Association: User -> Order
//   - Aggregation: Library o-> Book
//   - Composition: Car *-> Engine
//   - Inheritance: Admin --|> User
//
// # Construction and Validation
//
// NewGraph validates referential integrity up front, so the algorithm
// packages can assume a well-formed graph:
//
//	g, err := diagram.NewGraph("shop", diagram.DiagramClass, classes, rels)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Validation includes:
//   - Element id uniqueness and presence
//   - Relationship endpoints referencing existing classes
//   - Multiplicity values restricted to 0..1, 1, 0..*, 1..* and *
//
// A self-referencing relationship (source equals target) is permitted and
// left to the validation rules to flag, never dropped.
//
// # Inheritance Cycles
//
// Cycle detection walks the inheritance sub-graph iteratively, so deep
// hierarchies do not exhaust the goroutine stack:
//
//	if diagram.HasInheritanceCycle(g) {
//	    // reject or report
//	}
//	if diagram.WouldCreateCycle(g, source, target) {
//	    // adding source --|> target would close a loop
//	}
//
// InheritanceCycle reports one closed witness path for error messages.
//
// # Serialization
//
// MarshalGraph and UnmarshalGraph translate a Graph to and from its JSON
// wire form, applying the same validation on decode. Field names and enum
// values are stable and must not change between releases, since persisted
// diagrams round-trip through them.
package diagram
