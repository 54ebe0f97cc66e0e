package graph

import (
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/aretw0/qso/pkg/table"
)

// View is the plain data a renderer needs. It is built once, outside the message loop.
type View struct {
	Initial     domain.Phase
	Phases      []domain.Phase
	Transitions []domain.Transition
	Terminal    map[domain.Phase]bool
	// Patterns lists the patterns bound to each transition, in table order.
	Patterns map[domain.TransitionID][]string
}

// NewView extracts a View from a compiled protocol.
func NewView(g *graph.Graph, t *table.Table) View {
	v := View{
		Initial:     g.Initial(),
		Phases:      g.Phases(),
		Transitions: g.Transitions(),
		Terminal:    make(map[domain.Phase]bool),
		Patterns:    make(map[domain.TransitionID][]string),
	}
	for _, p := range v.Phases {
		if t.IsTerminal(p) {
			v.Terminal[p] = true
		}
	}
	for _, r := range t.Rules() {
		v.Patterns[r.Transition] = append(v.Patterns[r.Transition], r.Pattern.String())
	}
	return v
}

// Overlay contains dynamic conversation data to visualize on the graph.
type Overlay struct {
	Visited []domain.Phase
	Current domain.Phase
}
