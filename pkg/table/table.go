package table

import (
	"errors"
	"fmt"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
)

// ErrInvalidRule is returned when a rule does not fit the phase graph.
var ErrInvalidRule = errors.New("invalid match rule")

// Table is the ordered, read-only list of match rules.
// It is safe to share between engines.
type Table struct {
	rules   []domain.Rule
	byPhase map[domain.Phase][]int
}

// New builds a table for g. Rule order is evaluation order.
func New(g *graph.Graph, rules ...domain.Rule) (*Table, error) {
	t := &Table{
		rules:   make([]domain.Rule, 0, len(rules)),
		byPhase: make(map[domain.Phase][]int),
	}

	for i, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("%w: rule %d has no pattern", ErrInvalidRule, i)
		}
		if !g.Has(r.Phase) {
			return nil, fmt.Errorf("%w: rule %d phase %q: %w", ErrInvalidRule, i, r.Phase, domain.ErrUnknownPhase)
		}
		if _, ok := g.Transition(r.Transition); !ok {
			return nil, fmt.Errorf("%w: rule %d transition %q: %w", ErrInvalidRule, i, r.Transition, domain.ErrUnknownTransition)
		}
		t.byPhase[r.Phase] = append(t.byPhase[r.Phase], len(t.rules))
		t.rules = append(t.rules, r)
	}

	return t, nil
}

// Rules returns every rule in evaluation order.
func (t *Table) Rules() []domain.Rule {
	out := make([]domain.Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Rule returns the rule at index i.
func (t *Table) Rule(i int) domain.Rule {
	return t.rules[i]
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// RulesFor returns the rules applicable to phase p, in table order.
func (t *Table) RulesFor(p domain.Phase) []domain.Rule {
	idx := t.byPhase[p]
	out := make([]domain.Rule, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.rules[i])
	}
	return out
}

// IsTerminal reports whether p has no outgoing rules.
func (t *Table) IsTerminal(p domain.Phase) bool {
	return len(t.byPhase[p]) == 0
}
