package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/qso/internal/logging"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/aretw0/qso/pkg/table"
)

// Engine is the conversation state machine.
// It owns the current phase and the failure counter of a single conversation and is
// not safe for concurrent use; run one engine per conversation.
type Engine struct {
	graph     *graph.Graph
	table     *table.Table
	threshold int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	current  domain.Phase
	failures int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithThreshold sets the failure threshold. Negative values are ignored.
func WithThreshold(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.threshold = n
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine sitting in the graph's initial phase with a zero failure counter.
func NewEngine(g *graph.Graph, t *table.Table, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:     g,
		table:     t,
		threshold: domain.DefaultFailureThreshold,
		logger:    logging.NewNop(),
		current:   g.Initial(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentPhase returns the phase the conversation is in.
func (e *Engine) CurrentPhase() domain.Phase {
	return e.current
}

// Failures returns the failure counter.
func (e *Engine) Failures() int {
	return e.failures
}

// Threshold returns the configured failure threshold.
func (e *Engine) Threshold() int {
	return e.threshold
}

// IsTerminal reports whether the current phase has no outgoing rules.
func (e *Engine) IsTerminal() bool {
	return e.table.IsTerminal(e.current)
}

// Step processes a single normalized message.
//
// Rules are scanned in table order. Every rule bound to another phase bumps the
// failure counter; the first rule bound to the current phase decides the message
// alone: it either fires its transition (resetting the counter) or drops the
// message without touching the counter. Phases without rules therefore charge one
// failure per rule in the table.
//
// The only error is an illegal or unknown transition, which callers must treat as fatal.
func (e *Engine) Step(ctx context.Context, msg string) (domain.StepResult, error) {
	res := domain.StepResult{
		Previous: e.current,
		Phase:    e.current,
		Rule:     -1,
	}
	var rejectedBy string

	for i, rule := range e.table.Rules() {
		if rule.Phase != e.current {
			e.failures++
			continue
		}

		res.Rule = i
		if !rule.Pattern.Match(msg) {
			e.logger.Debug("pattern does not match", "phase", e.current, "pattern", rule.Pattern.String(), "msg", msg)
			rejectedBy = rule.Pattern.String()
			break
		}

		e.logger.Debug("pattern matched", "phase", e.current, "pattern", rule.Pattern.String(), "msg", msg)
		next, err := e.graph.Apply(e.current, rule.Transition)
		if err != nil {
			// The phase is unchanged, so observers still see the message as rejected.
			res.Failures = e.failures
			e.reject(ctx, msg, rule.Pattern.String())
			return res, fmt.Errorf("rule %d: %w", i, err)
		}

		from := e.current
		e.current = next
		e.failures = 0

		res.Advanced = true
		res.Phase = next
		res.Transition = rule.Transition

		e.logger.Info("transition", "id", rule.Transition, "from", from, "to", next)
		if e.hooks.OnTransition != nil {
			e.hooks.OnTransition(ctx, &domain.TransitionEvent{
				EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition},
				Transition: rule.Transition,
				From:       from,
				To:         next,
				Message:    msg,
			})
		}
		break
	}

	res.Failures = e.failures

	if !res.Advanced {
		e.reject(ctx, msg, rejectedBy)
	}

	if e.failures > e.threshold {
		res.ThresholdExceeded = true
		e.logger.Warn("failure threshold exceeded", "phase", e.current, "failures", e.failures, "threshold", e.threshold)
		if e.hooks.OnThresholdExceeded != nil {
			e.hooks.OnThresholdExceeded(ctx, &domain.ThresholdEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventThresholdExceeded},
				Phase:     e.current,
				Failures:  e.failures,
				Threshold: e.threshold,
			})
		}
	}

	return res, nil
}

func (e *Engine) reject(ctx context.Context, msg, pattern string) {
	if e.hooks.OnReject == nil {
		return
	}
	e.hooks.OnReject(ctx, &domain.RejectEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReject},
		Phase:     e.current,
		Message:   msg,
		Pattern:   pattern,
		Failures:  e.failures,
	})
}
