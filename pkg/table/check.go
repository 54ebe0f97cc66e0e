package table

import (
	"fmt"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
)

// IssueKind classifies a finding of Check.
type IssueKind string

const (
	IssueSourceMismatch IssueKind = "source_mismatch"
	IssueUnreachable    IssueKind = "unreachable"
	IssueDeadEnd        IssueKind = "dead_end"
)

// Issue is a consistency finding about a table and its graph.
type Issue struct {
	Kind    IssueKind
	Phase   domain.Phase
	Rule    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Check reports rules that would fail at runtime and phases a conversation can never
// reach or leave. A phase without rules is terminal; it is only a dead end when the
// graph still declares outgoing transitions for it.
func Check(g *graph.Graph, t *Table) []Issue {
	var issues []Issue

	for i, r := range t.rules {
		if !g.IsSource(r.Phase, r.Transition) {
			tr, _ := g.Transition(r.Transition)
			issues = append(issues, Issue{
				Kind:  IssueSourceMismatch,
				Phase: r.Phase,
				Rule:  i,
				Message: fmt.Sprintf("rule %d in phase %q fires %q which leaves %q",
					i, r.Phase, r.Transition, tr.From),
			})
		}
	}

	// Walk the edges the table can actually fire.
	visited := map[domain.Phase]bool{g.Initial(): true}
	queue := []domain.Phase{g.Initial()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, r := range t.RulesFor(current) {
			tr, ok := g.Transition(r.Transition)
			if !ok || tr.From != current || visited[tr.To] {
				continue
			}
			visited[tr.To] = true
			queue = append(queue, tr.To)
		}
	}

	for _, p := range g.Phases() {
		if !visited[p] {
			issues = append(issues, Issue{
				Kind:    IssueUnreachable,
				Phase:   p,
				Rule:    -1,
				Message: fmt.Sprintf("phase %q is unreachable from %q", p, g.Initial()),
			})
		}
		if t.IsTerminal(p) && len(g.Outgoing(p)) > 0 {
			issues = append(issues, Issue{
				Kind:    IssueDeadEnd,
				Phase:   p,
				Rule:    -1,
				Message: fmt.Sprintf("phase %q declares transitions but has no rules", p),
			})
		}
	}

	return issues
}
