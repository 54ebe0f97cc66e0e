package graph_test

import (
	"testing"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New("a", []domain.Phase{"a", "b", "c"}, []domain.Transition{
		{ID: "ab", From: "a", To: "b"},
		{ID: "bc", From: "b", To: "c"},
	})
	require.NoError(t, err)
	return g
}

func TestGraph_Apply(t *testing.T) {
	g := newGraph(t)

	next, err := g.Apply("a", "ab")
	require.NoError(t, err)
	assert.Equal(t, domain.Phase("b"), next)

	next, err = g.Apply("a", "bc")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, domain.Phase("a"), next, "phase must not move on an illegal transition")

	_, err = g.Apply("a", "zz")
	assert.ErrorIs(t, err, domain.ErrUnknownTransition)
}

func TestGraph_IsSource(t *testing.T) {
	g := newGraph(t)

	assert.True(t, g.IsSource("a", "ab"))
	assert.False(t, g.IsSource("b", "ab"))
	assert.False(t, g.IsSource("a", "missing"))
}

func TestGraph_Accessors(t *testing.T) {
	g := newGraph(t)

	assert.Equal(t, domain.Phase("a"), g.Initial())
	assert.Equal(t, []domain.Phase{"a", "b", "c"}, g.Phases())
	assert.Len(t, g.Transitions(), 2)
	assert.Empty(t, g.Outgoing("c"))
	assert.True(t, g.Has("c"))
	assert.False(t, g.Has("d"))

	// Returned slices are copies.
	phases := g.Phases()
	phases[0] = "mutated"
	assert.Equal(t, domain.Phase("a"), g.Phases()[0])
}

func TestGraph_New_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		initial     domain.Phase
		phases      []domain.Phase
		transitions []domain.Transition
	}{
		{name: "No initial", phases: []domain.Phase{"a"}},
		{name: "Unknown initial", initial: "x", phases: []domain.Phase{"a"}},
		{name: "Duplicate phase", initial: "a", phases: []domain.Phase{"a", "a"}},
		{
			name: "Duplicate transition", initial: "a", phases: []domain.Phase{"a", "b"},
			transitions: []domain.Transition{{ID: "t", From: "a", To: "b"}, {ID: "t", From: "b", To: "a"}},
		},
		{
			name: "Unknown destination", initial: "a", phases: []domain.Phase{"a"},
			transitions: []domain.Transition{{ID: "t", From: "a", To: "b"}},
		},
		{
			name: "Missing id", initial: "a", phases: []domain.Phase{"a", "b"},
			transitions: []domain.Transition{{From: "a", To: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.New(tt.initial, tt.phases, tt.transitions)
			assert.ErrorIs(t, err, graph.ErrInvalidGraph)
		})
	}
}
