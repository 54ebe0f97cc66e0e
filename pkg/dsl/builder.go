package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/aretw0/qso/pkg/table"
)

// Builder manages the protocol construction.
type Builder struct {
	phases      map[domain.Phase]*PhaseBuilder
	order       []domain.Phase
	initial     domain.Phase
	transitions []domain.Transition
	rules       []domain.Rule
	errs        []error
}

// New creates a new protocol builder.
func New() *Builder {
	return &Builder{
		phases: make(map[domain.Phase]*PhaseBuilder),
	}
}

// Phase declares a phase. If the phase already exists, it returns the existing builder.
func (b *Builder) Phase(p domain.Phase) *PhaseBuilder {
	if pb, ok := b.phases[p]; ok {
		return pb
	}
	pb := &PhaseBuilder{phase: p, builder: b}
	b.phases[p] = pb
	b.order = append(b.order, p)
	return pb
}

// Transition declares a transition without binding a rule to it.
func (b *Builder) Transition(id domain.TransitionID, from, to domain.Phase) *Builder {
	b.Phase(from)
	b.Phase(to)
	b.transitions = append(b.transitions, domain.Transition{ID: id, From: from, To: to})
	return b
}

// Rule appends a match rule. The pattern is compiled as a prefix-anchored regex.
func (b *Builder) Rule(p domain.Phase, expr string, id domain.TransitionID) *Builder {
	re, err := table.NewRegex(expr)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("phase %q: %w", p, err))
		return b
	}
	return b.RulePattern(p, re, id)
}

// RulePattern appends a match rule with a custom pattern.
func (b *Builder) RulePattern(p domain.Phase, pattern domain.Pattern, id domain.TransitionID) *Builder {
	b.Phase(p)
	b.rules = append(b.rules, domain.Rule{Phase: p, Pattern: pattern, Transition: id})
	return b
}

// Build compiles the definition into a phase graph and a match table.
func (b *Builder) Build() (*graph.Graph, *table.Table, error) {
	if len(b.errs) > 0 {
		return nil, nil, errors.Join(b.errs...)
	}

	g, err := graph.New(b.initial, b.order, b.transitions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build phase graph: %w", err)
	}

	t, err := table.New(g, b.rules...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build match table: %w", err)
	}

	return g, t, nil
}
