package diagram

// Clone returns a deep copy of the graph. Version snapshots and diff inputs
// are cloned so later edits to the live diagram cannot leak into them.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		ID:   g.ID,
		Name: g.Name,
		Kind: g.Kind,
	}
	if g.Classes != nil {
		out.Classes = make([]*Class, len(g.Classes))
		for i, c := range g.Classes {
			out.Classes[i] = c.Clone()
		}
	}
	if g.Relationships != nil {
		out.Relationships = make([]*Relationship, len(g.Relationships))
		for i, r := range g.Relationships {
			cr := *r
			out.Relationships[i] = &cr
		}
	}
	return out
}

// Clone returns a deep copy of the class.
func (c *Class) Clone() *Class {
	if c == nil {
		return nil
	}
	out := *c
	if c.Attributes != nil {
		out.Attributes = make([]*Attribute, len(c.Attributes))
		for i, a := range c.Attributes {
			ca := *a
			out.Attributes[i] = &ca
		}
	}
	if c.Methods != nil {
		out.Methods = make([]*Method, len(c.Methods))
		for i, m := range c.Methods {
			out.Methods[i] = m.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the method.
func (m *Method) Clone() *Method {
	if m == nil {
		return nil
	}
	out := *m
	if m.Parameters != nil {
		out.Parameters = make([]*Parameter, len(m.Parameters))
		for i, p := range m.Parameters {
			cp := *p
			out.Parameters[i] = &cp
		}
	}
	return &out
}
