package runner

import (
	"context"

	"github.com/aretw0/qso/pkg/domain"
)

// Handler defines the strategy for presenting a conversation.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type Handler interface {
	// OnStep is called after every processed message.
	OnStep(ctx context.Context, msg string, step domain.StepResult) error

	// OnFinish is called once when the run ends without error.
	OnFinish(ctx context.Context, res *Result) error
}

// PhaseStyler decorates phase names for display (e.g. terminal colours).
type PhaseStyler func(phase domain.Phase, advanced bool) string

// Handlers fans every callback out to hs in order, stopping at the first error.
func Handlers(hs ...Handler) Handler {
	return multiHandler(hs)
}

type multiHandler []Handler

func (m multiHandler) OnStep(ctx context.Context, msg string, step domain.StepResult) error {
	for _, h := range m {
		if err := h.OnStep(ctx, msg, step); err != nil {
			return err
		}
	}
	return nil
}

func (m multiHandler) OnFinish(ctx context.Context, res *Result) error {
	for _, h := range m {
		if err := h.OnFinish(ctx, res); err != nil {
			return err
		}
	}
	return nil
}
