package diagram

// Validate checks the graph for referential integrity: unique ids, named
// classes, known enum values, and relationship endpoints that reference
// classes of this graph. It reports the first violation found.
//
// Validate is a pure check; it never mutates the graph. NewGraph and
// UnmarshalGraph call it after filling defaults.
func (g *Graph) Validate() error {
	if !g.Kind.Valid() {
		return NewValidationError(string(g.Kind), ErrKind)
	}
	classIDs := make(map[string]struct{}, len(g.Classes))
	for _, c := range g.Classes {
		if c.Name == "" {
			return NewValidationError(c.ID, ErrMissingName)
		}
		if _, ok := classIDs[c.ID]; ok {
			return NewValidationError(c.ID, ErrDuplicateID)
		}
		classIDs[c.ID] = struct{}{}
		if !c.Kind.Valid() {
			return NewValidationError(c.Name, ErrKind)
		}
		for _, a := range c.Attributes {
			if !a.Visibility.Valid() {
				return NewValidationError(c.Name+"."+a.Name, ErrKind)
			}
		}
		for _, m := range c.Methods {
			if !m.Visibility.Valid() {
				return NewValidationError(c.Name+"."+m.Name, ErrKind)
			}
		}
	}
	relIDs := make(map[string]struct{}, len(g.Relationships))
	for _, r := range g.Relationships {
		if _, ok := relIDs[r.ID]; ok {
			return NewValidationError(r.ID, ErrDuplicateID)
		}
		relIDs[r.ID] = struct{}{}
		if !r.Kind.Valid() {
			return NewValidationError(r.ID, ErrKind)
		}
		if !r.SourceMultiplicity.Valid() {
			return NewValidationError(r.ID, ErrMultiplicity)
		}
		if !r.TargetMultiplicity.Valid() {
			return NewValidationError(r.ID, ErrMultiplicity)
		}
		if _, ok := classIDs[r.SourceID]; !ok {
			return NewValidationError(r.ID, ErrUnknownClass)
		}
		if _, ok := classIDs[r.TargetID]; !ok {
			return NewValidationError(r.ID, ErrUnknownClass)
		}
	}
	return nil
}
