package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/qso/internal/logging"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ports"
	"github.com/google/uuid"
)

// Runner drives an engine from a message source.
type Runner struct {
	// Handler receives every step. If nil, steps are only logged.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// StopOnTerminal ends the run once the engine sits in a terminal phase.
	StopOnTerminal bool

	// AbortOnThreshold ends the run on the first failure-threshold event.
	AbortOnThreshold bool

	// ConversationID labels the run. Generated when empty.
	ConversationID string
}

// New creates a Runner. By default it consumes the source until exhaustion.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop until the source is exhausted or a configured stop condition holds.
//
// Exhaustion is a normal end and yields OutcomeEndOfData with a nil error. Source
// failures, context cancellation and illegal transitions are returned as errors
// together with the partial result.
func (r *Runner) Run(ctx context.Context, engine ports.Engine, source ports.MessageSource) (*Result, error) {
	id := r.ConversationID
	if id == "" {
		id = uuid.NewString()
	}
	logger := r.Logger.With("conversation", id)

	res := &Result{
		ConversationID: id,
		Phase:          engine.CurrentPhase(),
		Terminal:       engine.IsTerminal(),
	}

	logger.Debug("conversation started", "phase", res.Phase)

	for {
		if r.StopOnTerminal && engine.IsTerminal() {
			res.Outcome = OutcomeTerminal
			break
		}

		msg, err := source.Next(ctx)
		if errors.Is(err, domain.ErrEndOfData) {
			res.Outcome = OutcomeEndOfData
			break
		}
		if err != nil {
			return res, fmt.Errorf("message source: %w", err)
		}

		step, err := engine.Step(ctx, msg)
		if err != nil {
			return res, fmt.Errorf("message %d %q: %w", res.Messages+1, msg, err)
		}
		res.record(msg, step)
		res.Terminal = engine.IsTerminal()

		if r.Handler != nil {
			if err := r.Handler.OnStep(ctx, msg, step); err != nil {
				return res, fmt.Errorf("handler error: %w", err)
			}
		}

		if step.ThresholdExceeded {
			logger.Warn("max fails exceeded", "phase", step.Phase, "failures", step.Failures)
			if r.AbortOnThreshold {
				res.Outcome = OutcomeThresholdAborted
				break
			}
		}
	}

	logger.Debug("conversation ended", "outcome", res.Outcome, "phase", res.Phase, "messages", res.Messages)

	if r.Handler != nil {
		if err := r.Handler.OnFinish(ctx, res); err != nil {
			return res, fmt.Errorf("handler error: %w", err)
		}
	}
	return res, nil
}
