package mapping

import (
	"fmt"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/naming"
)

// entityTable pairs a derived table with the primary key column it exposes
// to foreign keys. pk is nil when the class declares no id attribute.
type entityTable struct {
	table *schema.Table
	pk    *schema.Column
}

// Tables derives the relational schema of a graph: one table per entity
// class, a foreign key per owning relationship end, and a join table per
// many-to-many edge. Edges that touch a non-entity class, or reference a
// table without a primary key, contribute no constraint.
func Tables(g *diagram.Graph) ([]*schema.Table, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("mapping: derive tables: %w", err)
	}
	var (
		tables []*schema.Table
		byID   = make(map[string]*entityTable)
	)
	for _, c := range g.Classes {
		if !IsEntity(c) {
			continue
		}
		et := classTable(c)
		byID[c.ID] = et
		tables = append(tables, et.table)
	}
	for _, r := range g.Relationships {
		if !fieldKind(r.Kind) {
			continue
		}
		source, target := byID[r.SourceID], byID[r.TargetID]
		if source == nil || target == nil {
			continue
		}
		rel := Classify(r.SourceMultiplicity, r.TargetMultiplicity)
		switch {
		case rel == M2M:
			jt := joinTable(g, r, source, target)
			if jt != nil {
				tables = append(tables, jt)
			}
		case r.Kind == diagram.Composition || r.Kind == diagram.Aggregation || rel == O2M:
			// The child row holds the key of the class that owns or
			// collects it.
			null := r.SourceMultiplicity != diagram.One
			addForeignKey(target, source, null, deleteAction(r.Kind))
		default:
			null := r.TargetMultiplicity != diagram.One
			addForeignKey(source, target, null, schema.NoAction)
		}
	}
	return tables, nil
}

// classTable builds the table of a single class from its attributes.
func classTable(c *diagram.Class) *entityTable {
	et := &entityTable{
		table: &schema.Table{Name: naming.Snake(c.Name)},
	}
	for _, a := range c.Attributes {
		f := mapAttribute(a)
		col := &schema.Column{
			Name: f.Column,
			Type: &schema.ColumnType{
				Type: columnType(f),
				Null: f.Nullable && !f.PrimaryKey,
			},
		}
		et.table.Columns = append(et.table.Columns, col)
		if f.PrimaryKey && et.pk == nil {
			et.pk = col
			et.table.PrimaryKey = &schema.Index{
				Parts: []*schema.IndexPart{{C: col}},
			}
		}
		if f.Unique {
			et.table.Indexes = append(et.table.Indexes, &schema.Index{
				Name:   fmt.Sprintf("%s_%s_key", et.table.Name, col.Name),
				Unique: true,
				Parts:  []*schema.IndexPart{{C: col}},
			})
		}
	}
	return et
}

// columnType maps a field to its column type.
func columnType(f *Field) schema.Type {
	switch f.Type {
	case "String":
		return &schema.StringType{T: "varchar", Size: f.Length}
	case "Integer":
		return &schema.IntegerType{T: "int"}
	case "Long":
		return &schema.IntegerType{T: "bigint"}
	case "Double":
		return &schema.FloatType{T: "double"}
	case "Float":
		return &schema.FloatType{T: "float"}
	case "Boolean":
		return &schema.BoolType{T: "boolean"}
	case "LocalDateTime":
		return &schema.TimeType{T: "timestamp"}
	case "LocalDate":
		return &schema.TimeType{T: "date"}
	case "LocalTime":
		return &schema.TimeType{T: "time"}
	case "BigDecimal":
		return &schema.DecimalType{T: "decimal", Precision: f.Precision, Scale: f.Scale}
	case "UUID":
		return &schema.StringType{T: "char", Size: 36}
	case "List", "Set", "Map":
		return &schema.JSONType{T: "json"}
	default:
		return &schema.StringType{T: "varchar", Size: 255}
	}
}

// refColumnType returns a fresh copy of the referenced key's type for use
// on the referencing column.
func refColumnType(ref *schema.Column) schema.Type {
	switch t := ref.Type.Type.(type) {
	case *schema.IntegerType:
		return &schema.IntegerType{T: t.T, Unsigned: t.Unsigned}
	case *schema.StringType:
		return &schema.StringType{T: t.T, Size: t.Size}
	default:
		return &schema.IntegerType{T: "bigint"}
	}
}

// addForeignKey puts the key column of ref on t and constrains it. Nothing
// is added when ref has no primary key, or when an earlier edge between the
// same classes already produced the column.
func addForeignKey(t, ref *entityTable, null bool, onDelete schema.ReferenceOption) {
	if ref.pk == nil {
		return
	}
	name := ref.table.Name + "_id"
	for _, c := range t.table.Columns {
		if c.Name == name {
			return
		}
	}
	col := &schema.Column{
		Name: name,
		Type: &schema.ColumnType{Type: refColumnType(ref.pk), Null: null},
	}
	t.table.Columns = append(t.table.Columns, col)
	t.table.ForeignKeys = append(t.table.ForeignKeys, &schema.ForeignKey{
		Symbol:     fmt.Sprintf("%s_%s_fkey", t.table.Name, name),
		Table:      t.table,
		Columns:    []*schema.Column{col},
		RefTable:   ref.table,
		RefColumns: []*schema.Column{ref.pk},
		OnUpdate:   schema.NoAction,
		OnDelete:   onDelete,
	})
}

// joinTable builds the association table of a many-to-many edge, keyed by
// both endpoints. The second column takes its name from the relationship
// field so that self-referential edges stay unambiguous.
func joinTable(g *diagram.Graph, r *diagram.Relationship, source, target *entityTable) *schema.Table {
	if source.pk == nil || target.pk == nil {
		return nil
	}
	tc := g.ClassByID(r.TargetID)
	field := naming.Snake(SourceFieldName(r, tc))
	jt := &schema.Table{
		Name: source.table.Name + "_" + field,
	}
	left := &schema.Column{
		Name: source.table.Name + "_id",
		Type: &schema.ColumnType{Type: refColumnType(source.pk)},
	}
	right := &schema.Column{
		Name: naming.Singular(field) + "_id",
		Type: &schema.ColumnType{Type: refColumnType(target.pk)},
	}
	if right.Name == left.Name {
		right.Name = field + "_id"
	}
	jt.Columns = []*schema.Column{left, right}
	jt.PrimaryKey = &schema.Index{
		Parts: []*schema.IndexPart{{C: left}, {C: right}},
	}
	jt.ForeignKeys = []*schema.ForeignKey{
		{
			Symbol:     fmt.Sprintf("%s_%s_fkey", jt.Name, left.Name),
			Table:      jt,
			Columns:    []*schema.Column{left},
			RefTable:   source.table,
			RefColumns: []*schema.Column{source.pk},
			OnUpdate:   schema.NoAction,
			OnDelete:   schema.Cascade,
		},
		{
			Symbol:     fmt.Sprintf("%s_%s_fkey", jt.Name, right.Name),
			Table:      jt,
			Columns:    []*schema.Column{right},
			RefTable:   target.table,
			RefColumns: []*schema.Column{target.pk},
			OnUpdate:   schema.NoAction,
			OnDelete:   schema.Cascade,
		},
	}
	return jt
}

// deleteAction maps an owning edge kind onto its referential action.
func deleteAction(kind diagram.RelKind) schema.ReferenceOption {
	if kind == diagram.Composition {
		return schema.Cascade
	}
	return schema.NoAction
}
