package version

import "github.com/syssam/forma/diagram"

// Statistics summarizes the content of one snapshot.
type Statistics struct {
	Classes           int                       `json:"total_classes"`
	Relationships     int                       `json:"total_relationships"`
	ClassKinds        map[diagram.ClassKind]int `json:"class_types"`
	RelationshipKinds map[diagram.RelKind]int   `json:"relationship_types"`
	Attributes        int                       `json:"total_attributes"`
	Methods           int                       `json:"total_methods"`
}

// Stats counts the elements of a graph and the per-kind histograms.
func Stats(g *diagram.Graph) *Statistics {
	s := &Statistics{
		Classes:           len(g.Classes),
		Relationships:     len(g.Relationships),
		ClassKinds:        make(map[diagram.ClassKind]int),
		RelationshipKinds: make(map[diagram.RelKind]int),
	}
	for _, c := range g.Classes {
		s.ClassKinds[c.Kind]++
		s.Attributes += len(c.Attributes)
		s.Methods += len(c.Methods)
	}
	for _, r := range g.Relationships {
		s.RelationshipKinds[r.Kind]++
	}
	return s
}
