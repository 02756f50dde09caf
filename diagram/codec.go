package diagram

import (
	"encoding/json"
	"fmt"
)

// MarshalGraph encodes the graph into its JSON wire form. The field names
// and enum values are stable; persisted diagrams round-trip through them.
func MarshalGraph(g *Graph) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("diagram: encode graph: %w", err)
	}
	return data, nil
}

// UnmarshalGraph decodes a graph from its JSON wire form, fills defaulted
// values the same way NewGraph does, and validates the result. Payloads
// written by older versions may omit ids, kinds, multiplicities, and
// navigability flags; they decode to the documented defaults.
func UnmarshalGraph(data []byte) (*Graph, error) {
	g := &Graph{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("diagram: decode graph: %w", err)
	}
	if g.Kind == "" {
		g.Kind = DiagramClass
	}
	g.normalize()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// UnmarshalJSON decodes a relationship, defaulting both navigability flags
// to true when the payload omits them. Both ends of a UML association are
// navigable unless the author restricted one.
func (r *Relationship) UnmarshalJSON(data []byte) error {
	type alias Relationship
	aux := struct {
		*alias
		SourceNavigable *bool `json:"source_navigable"`
		TargetNavigable *bool `json:"target_navigable"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.SourceNavigable = aux.SourceNavigable == nil || *aux.SourceNavigable
	r.TargetNavigable = aux.TargetNavigable == nil || *aux.TargetNavigable
	return nil
}
