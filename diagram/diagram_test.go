package diagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forma/diagram"
)

func newClass(id, name string, attrs ...*diagram.Attribute) *diagram.Class {
	return &diagram.Class{ID: id, Name: name, Kind: diagram.KindClass, Attributes: attrs}
}

func TestNewGraph(t *testing.T) {
	t.Parallel()
	user := newClass("c1", "User", &diagram.Attribute{Name: "id", Type: "Long"})
	order := newClass("c2", "Order")
	rel := &diagram.Relationship{
		ID:                 "r1",
		Kind:               diagram.Association,
		SourceID:           "c2",
		TargetID:           "c1",
		SourceMultiplicity: diagram.OneMany,
		TargetMultiplicity: diagram.One,
		SourceNavigable:    true,
		TargetNavigable:    true,
	}

	g, err := diagram.NewGraph("shop", diagram.DiagramClass, []*diagram.Class{user, order}, []*diagram.Relationship{rel})
	require.NoError(t, err)
	require.NotEmpty(t, g.ID)
	assert.Equal(t, diagram.DiagramClass, g.Kind)
	assert.Same(t, user, g.ClassByID("c1"))
	assert.Same(t, order, g.ClassByName("Order"))
	assert.Nil(t, g.ClassByName("Missing"))
	assert.Len(t, g.RelationshipsFor("c1"), 1)
	assert.Len(t, g.RelationshipsFor("c2"), 1)
	assert.NotNil(t, user.Attribute("id"))
	assert.Nil(t, user.Attribute("email"))
}

func TestNewGraphDefaults(t *testing.T) {
	t.Parallel()
	class := &diagram.Class{
		Name:       "User",
		Attributes: []*diagram.Attribute{{Name: "id", Type: "Long"}},
		Methods:    []*diagram.Method{{Name: "login", ReturnType: "Boolean"}},
	}

	g, err := diagram.NewGraph("defaults", "", []*diagram.Class{class}, nil)
	require.NoError(t, err)
	assert.Equal(t, diagram.DiagramClass, g.Kind)
	assert.NotEmpty(t, class.ID)
	assert.Equal(t, diagram.KindClass, class.Kind)
	assert.Equal(t, diagram.Private, class.Attributes[0].Visibility)
	assert.Equal(t, diagram.Public, class.Methods[0].Visibility)
}

func TestNewGraphRejectsMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		classes []*diagram.Class
		rels    []*diagram.Relationship
		want    error
	}{
		{
			name:    "duplicate class id",
			classes: []*diagram.Class{newClass("c1", "User"), newClass("c1", "Order")},
			want:    diagram.ErrDuplicateID,
		},
		{
			name:    "missing class name",
			classes: []*diagram.Class{{ID: "c1"}},
			want:    diagram.ErrMissingName,
		},
		{
			name:    "dangling endpoint",
			classes: []*diagram.Class{newClass("c1", "User")},
			rels: []*diagram.Relationship{{
				ID: "r1", SourceID: "c1", TargetID: "ghost",
			}},
			want: diagram.ErrUnknownClass,
		},
		{
			name:    "invalid multiplicity",
			classes: []*diagram.Class{newClass("c1", "User"), newClass("c2", "Order")},
			rels: []*diagram.Relationship{{
				ID: "r1", SourceID: "c1", TargetID: "c2",
				SourceMultiplicity: "2..4", TargetMultiplicity: diagram.One,
			}},
			want: diagram.ErrMultiplicity,
		},
		{
			name: "invalid class kind",
			classes: []*diagram.Class{{
				ID: "c1", Name: "User", Kind: "struct",
			}},
			want: diagram.ErrKind,
		},
		{
			name:    "duplicate relationship id",
			classes: []*diagram.Class{newClass("c1", "User"), newClass("c2", "Order")},
			rels: []*diagram.Relationship{
				{ID: "r1", SourceID: "c1", TargetID: "c2"},
				{ID: "r1", SourceID: "c2", TargetID: "c1"},
			},
			want: diagram.ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := diagram.NewGraph("bad", diagram.DiagramClass, tt.classes, tt.rels)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, diagram.IsValidationError(err))
		})
	}
}

func TestNewGraphAllowsSelfLoop(t *testing.T) {
	t.Parallel()
	node := newClass("c1", "TreeNode")
	rel := &diagram.Relationship{
		ID: "r1", Kind: diagram.Association,
		SourceID: "c1", TargetID: "c1",
		SourceMultiplicity: diagram.One, TargetMultiplicity: diagram.ZeroMany,
	}

	g, err := diagram.NewGraph("tree", diagram.DiagramClass, []*diagram.Class{node}, []*diagram.Relationship{rel})
	require.NoError(t, err)
	require.Len(t, g.Relationships, 1)
	assert.True(t, g.Relationships[0].SelfLoop())
}

func TestGraphClone(t *testing.T) {
	t.Parallel()
	user := newClass("c1", "User", &diagram.Attribute{Name: "id", Type: "Long"})
	user.Methods = []*diagram.Method{{
		Name: "rename", ReturnType: "void", Visibility: diagram.Public,
		Parameters: []*diagram.Parameter{{Name: "name", Type: "String"}},
	}}
	g, err := diagram.NewGraph("clone", diagram.DiagramClass, []*diagram.Class{user}, nil)
	require.NoError(t, err)

	cp := g.Clone()
	require.NotSame(t, g, cp)

	cp.Classes[0].Name = "Account"
	cp.Classes[0].Attributes[0].Type = "UUID"
	cp.Classes[0].Methods[0].Parameters[0].Name = "alias"

	assert.Equal(t, "User", g.Classes[0].Name)
	assert.Equal(t, "Long", g.Classes[0].Attributes[0].Type)
	assert.Equal(t, "name", g.Classes[0].Methods[0].Parameters[0].Name)
}
