package http

import (
	"context"
	"sync"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/runner"
)

// Status is a read-only snapshot of the conversation.
type Status struct {
	ConversationID string             `json:"conversation_id,omitempty"`
	Phase          domain.Phase       `json:"phase"`
	Failures       int                `json:"failures"`
	Messages       int                `json:"messages"`
	Advances       int                `json:"advances"`
	Finished       bool               `json:"finished"`
	Outcome        runner.Outcome     `json:"outcome,omitempty"`
	Last           *domain.StepResult `json:"last,omitempty"`
}

// Tracker records the snapshot the status endpoint serves.
// It is a runner.Handler, so engine state is only ever read from the run loop.
type Tracker struct {
	mu     sync.RWMutex
	status Status
}

// NewTracker creates a tracker for a conversation starting in initial.
func NewTracker(conversationID string, initial domain.Phase) *Tracker {
	return &Tracker{status: Status{ConversationID: conversationID, Phase: initial}}
}

func (t *Tracker) OnStep(ctx context.Context, msg string, step domain.StepResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.Phase = step.Phase
	t.status.Failures = step.Failures
	t.status.Messages++
	if step.Advanced {
		t.status.Advances++
	}
	last := step
	t.status.Last = &last
	return nil
}

func (t *Tracker) OnFinish(ctx context.Context, res *runner.Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.Finished = true
	t.status.Outcome = res.Outcome
	t.status.Phase = res.Phase
	return nil
}

// Snapshot returns a copy of the current status.
func (t *Tracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.status
	if s.Last != nil {
		last := *s.Last
		s.Last = &last
	}
	return s
}
