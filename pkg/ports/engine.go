package ports

import (
	"context"

	"github.com/aretw0/qso/pkg/domain"
)

// Engine is the conversation state machine as seen by drivers.
type Engine interface {
	CurrentPhase() domain.Phase
	Step(ctx context.Context, msg string) (domain.StepResult, error)
	IsTerminal() bool
}
