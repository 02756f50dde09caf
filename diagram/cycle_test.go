package diagram_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forma/diagram"
)

// inherits builds an inheritance edge child --|> parent.
func inherits(id, child, parent string) *diagram.Relationship {
	return &diagram.Relationship{
		ID: id, Kind: diagram.Inheritance,
		SourceID: child, TargetID: parent,
		SourceMultiplicity: diagram.One, TargetMultiplicity: diagram.One,
	}
}

func TestHasInheritanceCycle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		classes []*diagram.Class
		rels    []*diagram.Relationship
		want    bool
	}{
		{
			name:    "empty graph",
			classes: nil,
			rels:    nil,
			want:    false,
		},
		{
			name: "forest",
			classes: []*diagram.Class{
				newClass("a", "A"), newClass("b", "B"), newClass("c", "C"), newClass("d", "D"),
			},
			rels: []*diagram.Relationship{
				inherits("r1", "a", "b"),
				inherits("r2", "c", "b"),
				inherits("r3", "d", "c"),
			},
			want: false,
		},
		{
			name: "two node mutual cycle",
			classes: []*diagram.Class{
				newClass("a", "A"), newClass("b", "B"),
			},
			rels: []*diagram.Relationship{
				inherits("r1", "a", "b"),
				inherits("r2", "b", "a"),
			},
			want: true,
		},
		{
			name: "three node cycle",
			classes: []*diagram.Class{
				newClass("a", "A"), newClass("b", "B"), newClass("c", "C"),
			},
			rels: []*diagram.Relationship{
				inherits("r1", "a", "b"),
				inherits("r2", "b", "c"),
				inherits("r3", "c", "a"),
			},
			want: true,
		},
		{
			name: "diamond is not a cycle",
			classes: []*diagram.Class{
				newClass("a", "A"), newClass("b", "B"), newClass("c", "C"), newClass("d", "D"),
			},
			rels: []*diagram.Relationship{
				inherits("r1", "b", "a"),
				inherits("r2", "c", "a"),
				inherits("r3", "d", "b"),
				inherits("r4", "d", "c"),
			},
			want: false,
		},
		{
			name: "association edges are ignored",
			classes: []*diagram.Class{
				newClass("a", "A"), newClass("b", "B"),
			},
			rels: []*diagram.Relationship{
				{ID: "r1", Kind: diagram.Association, SourceID: "a", TargetID: "b",
					SourceMultiplicity: diagram.One, TargetMultiplicity: diagram.One},
				{ID: "r2", Kind: diagram.Association, SourceID: "b", TargetID: "a",
					SourceMultiplicity: diagram.One, TargetMultiplicity: diagram.One},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := diagram.NewGraph("cycles", diagram.DiagramClass, tt.classes, tt.rels)
			require.NoError(t, err)
			assert.Equal(t, tt.want, diagram.HasInheritanceCycle(g))
		})
	}
}

func TestHasInheritanceCycleDeepChain(t *testing.T) {
	t.Parallel()
	const n = 10000
	classes := make([]*diagram.Class, n)
	rels := make([]*diagram.Relationship, 0, n)
	for i := 0; i < n; i++ {
		classes[i] = newClass(fmt.Sprintf("c%d", i), fmt.Sprintf("C%d", i))
		if i > 0 {
			rels = append(rels, inherits(fmt.Sprintf("r%d", i), fmt.Sprintf("c%d", i-1), fmt.Sprintf("c%d", i)))
		}
	}
	g, err := diagram.NewGraph("deep", diagram.DiagramClass, classes, rels)
	require.NoError(t, err)

	assert.False(t, diagram.HasInheritanceCycle(g))
	assert.True(t, diagram.WouldCreateCycle(g, fmt.Sprintf("c%d", n-1), "c0"))

	// Closing the chain turns it into one long cycle.
	g.Relationships = append(g.Relationships, inherits("loop", fmt.Sprintf("c%d", n-1), "c0"))
	assert.True(t, diagram.HasInheritanceCycle(g))
}

func TestWouldCreateCycle(t *testing.T) {
	t.Parallel()
	g, err := diagram.NewGraph("candidates", diagram.DiagramClass,
		[]*diagram.Class{
			newClass("a", "A"), newClass("b", "B"), newClass("c", "C"), newClass("x", "X"),
		},
		[]*diagram.Relationship{
			inherits("r1", "a", "b"),
			inherits("r2", "b", "c"),
		},
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		source string
		target string
		want   bool
	}{
		{"self loop", "a", "a", true},
		{"closes chain", "c", "a", true},
		{"direct back edge", "b", "a", true},
		{"extends chain", "x", "a", false},
		{"new root", "c", "x", false},
		{"parallel edge", "a", "b", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, diagram.WouldCreateCycle(g, tt.source, tt.target))
		})
	}
}

func TestInheritanceCycle(t *testing.T) {
	t.Parallel()

	t.Run("three class cycle", func(t *testing.T) {
		t.Parallel()
		g, err := diagram.NewGraph("cyclic", diagram.DiagramClass,
			[]*diagram.Class{newClass("a", "A"), newClass("b", "B"), newClass("c", "C")},
			[]*diagram.Relationship{
				inherits("r1", "a", "b"),
				inherits("r2", "b", "c"),
				inherits("r3", "c", "a"),
			},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "a"}, diagram.InheritanceCycle(g))
	})

	t.Run("self loop", func(t *testing.T) {
		t.Parallel()
		g, err := diagram.NewGraph("loop", diagram.DiagramClass,
			[]*diagram.Class{newClass("x", "X")},
			[]*diagram.Relationship{inherits("r1", "x", "x")},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x"}, diagram.InheritanceCycle(g))
	})

	t.Run("cycle behind a tail", func(t *testing.T) {
		t.Parallel()
		// d hangs off the b-c-a cycle; the walk from d must report only
		// the cycle, not its approach path.
		g, err := diagram.NewGraph("tail", diagram.DiagramClass,
			[]*diagram.Class{newClass("a", "A"), newClass("b", "B"), newClass("c", "C"), newClass("d", "D")},
			[]*diagram.Relationship{
				inherits("r0", "d", "a"),
				inherits("r1", "a", "b"),
				inherits("r2", "b", "c"),
				inherits("r3", "c", "a"),
			},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "a"}, diagram.InheritanceCycle(g))
	})

	t.Run("acyclic", func(t *testing.T) {
		t.Parallel()
		g, err := diagram.NewGraph("forest", diagram.DiagramClass,
			[]*diagram.Class{newClass("a", "A"), newClass("b", "B")},
			[]*diagram.Relationship{inherits("r1", "a", "b")},
		)
		require.NoError(t, err)
		assert.Nil(t, diagram.InheritanceCycle(g))
	})
}

func BenchmarkHasInheritanceCycle(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		classes := make([]*diagram.Class, n)
		rels := make([]*diagram.Relationship, 0, n)
		for i := 0; i < n; i++ {
			classes[i] = newClass(fmt.Sprintf("c%d", i), fmt.Sprintf("C%d", i))
			if i > 0 {
				rels = append(rels, inherits(fmt.Sprintf("r%d", i), fmt.Sprintf("c%d", i-1), fmt.Sprintf("c%d", i)))
			}
		}
		g, err := diagram.NewGraph("bench", diagram.DiagramClass, classes, rels)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("chain-%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				diagram.HasInheritanceCycle(g)
			}
		})
	}
}
