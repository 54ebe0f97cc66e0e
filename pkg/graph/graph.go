package graph

import (
	"errors"
	"fmt"

	"github.com/aretw0/qso/pkg/domain"
)

// ErrInvalidGraph is returned when a graph definition is inconsistent.
var ErrInvalidGraph = errors.New("invalid phase graph")

// Graph is the immutable set of phases and transitions of a protocol.
type Graph struct {
	initial     domain.Phase
	phases      []domain.Phase
	known       map[domain.Phase]struct{}
	transitions []domain.Transition
	byID        map[domain.TransitionID]domain.Transition
}

// New validates and builds a graph. Phases and transitions keep their declaration order.
func New(initial domain.Phase, phases []domain.Phase, transitions []domain.Transition) (*Graph, error) {
	g := &Graph{
		initial:     initial,
		phases:      make([]domain.Phase, 0, len(phases)),
		known:       make(map[domain.Phase]struct{}, len(phases)),
		transitions: make([]domain.Transition, 0, len(transitions)),
		byID:        make(map[domain.TransitionID]domain.Transition, len(transitions)),
	}

	for _, p := range phases {
		if p == "" {
			return nil, fmt.Errorf("%w: empty phase name", ErrInvalidGraph)
		}
		if _, dup := g.known[p]; dup {
			return nil, fmt.Errorf("%w: duplicate phase %q", ErrInvalidGraph, p)
		}
		g.known[p] = struct{}{}
		g.phases = append(g.phases, p)
	}

	if initial == "" {
		return nil, fmt.Errorf("%w: no initial phase", ErrInvalidGraph)
	}
	if !g.Has(initial) {
		return nil, fmt.Errorf("%w: initial phase %q: %w", ErrInvalidGraph, initial, domain.ErrUnknownPhase)
	}

	for _, t := range transitions {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: transition %s -> %s has no id", ErrInvalidGraph, t.From, t.To)
		}
		if _, dup := g.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate transition %q", ErrInvalidGraph, t.ID)
		}
		if !g.Has(t.From) {
			return nil, fmt.Errorf("%w: transition %q source %q: %w", ErrInvalidGraph, t.ID, t.From, domain.ErrUnknownPhase)
		}
		if !g.Has(t.To) {
			return nil, fmt.Errorf("%w: transition %q destination %q: %w", ErrInvalidGraph, t.ID, t.To, domain.ErrUnknownPhase)
		}
		g.byID[t.ID] = t
		g.transitions = append(g.transitions, t)
	}

	return g, nil
}

// Initial returns the designated initial phase.
func (g *Graph) Initial() domain.Phase {
	return g.initial
}

// Has reports whether p is a declared phase.
func (g *Graph) Has(p domain.Phase) bool {
	_, ok := g.known[p]
	return ok
}

// Phases returns the declared phases in declaration order.
func (g *Graph) Phases() []domain.Phase {
	out := make([]domain.Phase, len(g.phases))
	copy(out, g.phases)
	return out
}

// Transitions returns the declared transitions in declaration order.
// Renderers consume this as plain data.
func (g *Graph) Transitions() []domain.Transition {
	out := make([]domain.Transition, len(g.transitions))
	copy(out, g.transitions)
	return out
}

// Transition looks up a transition by ID.
func (g *Graph) Transition(id domain.TransitionID) (domain.Transition, bool) {
	t, ok := g.byID[id]
	return t, ok
}

// IsSource reports whether p is the source phase of transition id.
func (g *Graph) IsSource(p domain.Phase, id domain.TransitionID) bool {
	t, ok := g.byID[id]
	return ok && t.From == p
}

// Apply fires transition id from the current phase and returns the destination.
func (g *Graph) Apply(current domain.Phase, id domain.TransitionID) (domain.Phase, error) {
	t, ok := g.byID[id]
	if !ok {
		return current, fmt.Errorf("%w: %q", domain.ErrUnknownTransition, id)
	}
	if t.From != current {
		return current, fmt.Errorf("%w: %q leaves %q, engine is in %q", domain.ErrIllegalTransition, id, t.From, current)
	}
	return t.To, nil
}

// Outgoing returns the transitions whose source is p, in declaration order.
func (g *Graph) Outgoing(p domain.Phase) []domain.Transition {
	var out []domain.Transition
	for _, t := range g.transitions {
		if t.From == p {
			out = append(out, t)
		}
	}
	return out
}
