package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forma/diagram"
	"github.com/syssam/forma/validate"
)

func build(t *testing.T, classes []*diagram.Class, rels []*diagram.Relationship) *diagram.Graph {
	t.Helper()
	g, err := diagram.NewGraph("library", diagram.DiagramClass, classes, rels)
	require.NoError(t, err)
	return g
}

func TestSystemRules(t *testing.T) {
	t.Parallel()
	rules := validate.SystemRules()
	assert.Len(t, rules, 7)
	seen := make(map[string]bool)
	for _, r := range rules {
		assert.True(t, r.Active, r.ID)
		assert.True(t, r.System, r.ID)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	// Constructors hand out fresh values so callers can tweak one engine's
	// copy without affecting another.
	again := validate.SystemRules()
	assert.NotSame(t, rules[0], again[0])
}

func TestClassNamingRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "a", Name: "UserAccount"},
		{ID: "b", Name: "orderItem"},
		{ID: "c", Name: "Order_Item"},
	}, nil)

	got := validate.ClassNamingRule().Check(g)
	assert.Equal(t, []string{
		"Class 'orderItem' should use PascalCase naming",
		"Class 'Order_Item' should use PascalCase naming",
	}, got)
}

func TestInterfaceNamingRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "a", Name: "IRepository", Kind: diagram.KindInterface},
		{ID: "b", Name: "Serializable", Kind: diagram.KindInterface},
		{ID: "c", Name: "PaymentService", Kind: diagram.KindInterface},
		{ID: "d", Name: "Repository", Kind: diagram.KindInterface},
		{ID: "e", Name: "repository"},
	}, nil)

	got := validate.InterfaceNamingRule().Check(g)
	assert.Equal(t, []string{"Interface 'Repository' should follow naming patterns"}, got)
}

func TestEntityPatternRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "a", Name: "UserEntity"},
		{ID: "b", Name: "OrderModel", Attributes: []*diagram.Attribute{{Name: "identifier", Type: "Long"}}},
		{ID: "c", Name: "ProductDO", Attributes: []*diagram.Attribute{{Name: "ID", Type: "Long"}}},
		{ID: "d", Name: "Customer"},
	}, nil)

	got := validate.EntityPatternRule().Check(g)
	assert.Equal(t, []string{"Entity class 'UserEntity' should have an ID field"}, got)
}

func TestCompositionRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "o", Name: "Order"},
		{ID: "i", Name: "OrderItem"},
		{ID: "t", Name: "Tag"},
	}, []*diagram.Relationship{
		{ID: "r1", Kind: diagram.Composition, SourceID: "o", TargetID: "i",
			SourceMultiplicity: diagram.ZeroMany, TargetMultiplicity: diagram.Many, SourceNavigable: true},
		{ID: "r2", Kind: diagram.Composition, SourceID: "o", TargetID: "t",
			SourceMultiplicity: diagram.One, TargetMultiplicity: diagram.ZeroMany, SourceNavigable: true},
		{ID: "r3", Kind: diagram.Association, SourceID: "i", TargetID: "t",
			SourceMultiplicity: diagram.Many, TargetMultiplicity: diagram.Many, SourceNavigable: true},
	})

	got := validate.CompositionRule().Check(g)
	assert.Equal(t, []string{"Many-to-many composition may indicate design issue"}, got)
}

func TestInheritanceCycleRule(t *testing.T) {
	t.Parallel()
	cyclic := build(t, []*diagram.Class{
		{ID: "a", Name: "Animal"},
		{ID: "b", Name: "Dog"},
	}, []*diagram.Relationship{
		{ID: "r1", Kind: diagram.Inheritance, SourceID: "a", TargetID: "b"},
		{ID: "r2", Kind: diagram.Inheritance, SourceID: "b", TargetID: "a"},
	})
	assert.Equal(t,
		[]string{"Cyclic inheritance detected in class hierarchy"},
		validate.InheritanceCycleRule().Check(cyclic),
	)

	acyclic := build(t, []*diagram.Class{
		{ID: "a", Name: "Animal"},
		{ID: "b", Name: "Dog"},
	}, []*diagram.Relationship{
		{ID: "r1", Kind: diagram.Inheritance, SourceID: "b", TargetID: "a"},
	})
	assert.Empty(t, validate.InheritanceCycleRule().Check(acyclic))
}

func TestNavigabilityRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "a", Name: "User"},
		{ID: "b", Name: "Order"},
	}, []*diagram.Relationship{
		{ID: "r1", SourceID: "a", TargetID: "b"},
		{ID: "r2", SourceID: "b", TargetID: "a", SourceNavigable: true},
	})

	got := validate.NavigabilityRule().Check(g)
	assert.Equal(t, []string{"Non-navigable relationship may be unnecessary"}, got)
}

func TestSelfReferenceRule(t *testing.T) {
	t.Parallel()
	g := build(t, []*diagram.Class{
		{ID: "e", Name: "Employee"},
		{ID: "d", Name: "Department"},
	}, []*diagram.Relationship{
		{ID: "r1", SourceID: "e", TargetID: "e", SourceNavigable: true, TargetNavigable: true},
		{ID: "r2", SourceID: "e", TargetID: "d", SourceNavigable: true},
	})

	got := validate.SelfReferenceRule().Check(g)
	assert.Equal(t, []string{"Class 'Employee' has a self-referential relationship"}, got)
}
