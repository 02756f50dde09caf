package mapping_test

import (
	"testing"

	"ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/mapping"
)

func tableByName(t *testing.T, tables []*schema.Table, name string) *schema.Table {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name == name {
			return tbl
		}
	}
	t.Fatalf("table %q not found", name)
	return nil
}

func columnByName(t *testing.T, tbl *schema.Table, name string) *schema.Column {
	t.Helper()
	for _, c := range tbl.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found on %q", name, tbl.Name)
	return nil
}

func TestTables(t *testing.T) {
	t.Parallel()
	user := &diagram.Class{ID: "u", Name: "User", Attributes: []*diagram.Attribute{
		{Name: "id", Type: "Long"},
		{Name: "email", Type: "String", Final: true},
	}}
	order := &diagram.Class{ID: "o", Name: "Order", Attributes: []*diagram.Attribute{
		{Name: "id", Type: "Long"},
		{Name: "total", Type: "BigDecimal"},
	}}
	g := build(t, []*diagram.Class{user, order}, []*diagram.Relationship{{
		ID:                 "r",
		Kind:               diagram.Association,
		SourceID:           "o",
		TargetID:           "u",
		SourceMultiplicity: diagram.OneMany,
		TargetMultiplicity: diagram.One,
		SourceNavigable:    true,
		TargetNavigable:    true,
	}})

	tables, err := mapping.Tables(g)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	ut := tableByName(t, tables, "user")
	id := columnByName(t, ut, "id")
	require.IsType(t, &schema.IntegerType{}, id.Type.Type)
	assert.Equal(t, "bigint", id.Type.Type.(*schema.IntegerType).T)
	require.NotNil(t, ut.PrimaryKey)
	require.Len(t, ut.PrimaryKey.Parts, 1)
	assert.Same(t, id, ut.PrimaryKey.Parts[0].C)

	email := columnByName(t, ut, "email")
	st, ok := email.Type.Type.(*schema.StringType)
	require.True(t, ok)
	assert.Equal(t, "varchar", st.T)
	assert.Equal(t, 255, st.Size)
	assert.False(t, email.Type.Null)
	require.Len(t, ut.Indexes, 1)
	assert.Equal(t, "user_email_key", ut.Indexes[0].Name)
	assert.True(t, ut.Indexes[0].Unique)

	ot := tableByName(t, tables, "order")
	total := columnByName(t, ot, "total")
	dt, ok := total.Type.Type.(*schema.DecimalType)
	require.True(t, ok)
	assert.Equal(t, 19, dt.Precision)
	assert.Equal(t, 2, dt.Scale)

	fkCol := columnByName(t, ot, "user_id")
	assert.False(t, fkCol.Type.Null)
	require.Len(t, ot.ForeignKeys, 1)
	fk := ot.ForeignKeys[0]
	assert.Equal(t, "order_user_id_fkey", fk.Symbol)
	assert.Same(t, ut, fk.RefTable)
	assert.Same(t, fkCol, fk.Columns[0])
	assert.Same(t, id, fk.RefColumns[0])
	assert.Equal(t, schema.NoAction, fk.OnDelete)
}

func TestTablesComposition(t *testing.T) {
	t.Parallel()
	car := &diagram.Class{ID: "c", Name: "Car", Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}}}
	engine := &diagram.Class{ID: "e", Name: "Engine", Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}}}
	g := build(t, []*diagram.Class{car, engine}, []*diagram.Relationship{{
		ID:                 "r",
		Kind:               diagram.Composition,
		SourceID:           "c",
		TargetID:           "e",
		SourceMultiplicity: diagram.One,
		TargetMultiplicity: diagram.One,
		SourceNavigable:    true,
		TargetNavigable:    true,
	}})

	tables, err := mapping.Tables(g)
	require.NoError(t, err)

	// The owned part carries the key of its whole, and dies with it.
	et := tableByName(t, tables, "engine")
	fkCol := columnByName(t, et, "car_id")
	assert.False(t, fkCol.Type.Null)
	require.Len(t, et.ForeignKeys, 1)
	assert.Equal(t, schema.Cascade, et.ForeignKeys[0].OnDelete)

	ct := tableByName(t, tables, "car")
	for _, c := range ct.Columns {
		assert.NotEqual(t, "engine_id", c.Name)
	}
	assert.Empty(t, ct.ForeignKeys)
}

func TestTablesManyToMany(t *testing.T) {
	t.Parallel()
	user := &diagram.Class{ID: "u", Name: "User", Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}}}
	role := &diagram.Class{ID: "r", Name: "Role", Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}}}
	g := build(t, []*diagram.Class{user, role}, []*diagram.Relationship{{
		ID:                 "ur",
		Kind:               diagram.Association,
		SourceID:           "u",
		TargetID:           "r",
		SourceMultiplicity: diagram.Many,
		TargetMultiplicity: diagram.Many,
		SourceNavigable:    true,
		TargetNavigable:    true,
	}})

	tables, err := mapping.Tables(g)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	jt := tableByName(t, tables, "user_roles")
	require.Len(t, jt.Columns, 2)
	assert.Equal(t, "user_id", jt.Columns[0].Name)
	assert.Equal(t, "role_id", jt.Columns[1].Name)
	require.NotNil(t, jt.PrimaryKey)
	assert.Len(t, jt.PrimaryKey.Parts, 2)
	require.Len(t, jt.ForeignKeys, 2)
	assert.Equal(t, schema.Cascade, jt.ForeignKeys[0].OnDelete)
	assert.Equal(t, schema.Cascade, jt.ForeignKeys[1].OnDelete)
	assert.Same(t, tableByName(t, tables, "user"), jt.ForeignKeys[0].RefTable)
	assert.Same(t, tableByName(t, tables, "role"), jt.ForeignKeys[1].RefTable)
}

func TestTablesSkipsDanglingKeys(t *testing.T) {
	t.Parallel()
	order := &diagram.Class{ID: "o", Name: "Order", Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}}}
	note := &diagram.Class{ID: "n", Name: "Note", Attributes: []*diagram.Attribute{{Name: "text", Type: "String"}}}
	svc := &diagram.Class{ID: "s", Name: "Mailer", Stereotype: "service"}
	g := build(t, []*diagram.Class{order, note, svc}, []*diagram.Relationship{
		{
			ID: "r1", Kind: diagram.Association, SourceID: "o", TargetID: "n",
			SourceMultiplicity: diagram.Many, TargetMultiplicity: diagram.One,
			SourceNavigable: true, TargetNavigable: true,
		},
		{
			ID: "r2", Kind: diagram.Association, SourceID: "o", TargetID: "s",
			SourceMultiplicity: diagram.Many, TargetMultiplicity: diagram.One,
			SourceNavigable: true, TargetNavigable: true,
		},
	})

	tables, err := mapping.Tables(g)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// Note has no id attribute and Mailer maps to no table at all, so the
	// order table keeps only its own columns.
	ot := tableByName(t, tables, "order")
	assert.Len(t, ot.Columns, 1)
	assert.Empty(t, ot.ForeignKeys)
	nt := tableByName(t, tables, "note")
	assert.Nil(t, nt.PrimaryKey)
}

func TestTablesRejectsMalformed(t *testing.T) {
	t.Parallel()
	g := &diagram.Graph{
		Kind: diagram.DiagramClass,
		Classes: []*diagram.Class{
			{ID: "a", Name: "A", Kind: diagram.KindClass},
			{ID: "a", Name: "B", Kind: diagram.KindClass},
		},
	}
	_, err := mapping.Tables(g)
	assert.ErrorIs(t, err, diagram.ErrDuplicateID)
}
