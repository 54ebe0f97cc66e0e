package dsl

import "github.com/aretw0/qso/pkg/domain"

// PhaseBuilder provides a fluent API for configuring a phase.
type PhaseBuilder struct {
	phase   domain.Phase
	builder *Builder
}

// Initial marks the phase as the initial phase. The last call wins.
func (p *PhaseBuilder) Initial() *PhaseBuilder {
	p.builder.initial = p.phase
	return p
}

// When declares transition id from this phase to the destination and binds a rule
// that fires it when expr matches.
func (p *PhaseBuilder) When(expr string, id domain.TransitionID, to domain.Phase) *PhaseBuilder {
	p.builder.Transition(id, p.phase, to)
	p.builder.Rule(p.phase, expr, id)
	return p
}

// Fire binds another rule of this phase to an already declared transition.
func (p *PhaseBuilder) Fire(expr string, id domain.TransitionID) *PhaseBuilder {
	p.builder.Rule(p.phase, expr, id)
	return p
}

// Terminal is a no-op marker for readability: a phase without rules is terminal.
func (p *PhaseBuilder) Terminal() *PhaseBuilder {
	return p
}
