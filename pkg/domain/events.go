package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition        EventType = "transition"
	EventReject            EventType = "reject"
	EventThresholdExceeded EventType = "threshold_exceeded"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent is emitted when a message advances the conversation.
type TransitionEvent struct {
	EventBase
	Transition TransitionID `json:"transition"`
	From       Phase        `json:"from"`
	To         Phase        `json:"to"`
	Message    string       `json:"message"`
}

// RejectEvent is emitted when a message leaves the phase unchanged.
type RejectEvent struct {
	EventBase
	Phase    Phase  `json:"phase"`
	Message  string `json:"message"`
	Pattern  string `json:"pattern,omitempty"` // empty when no rule for Phase was reached
	Failures int    `json:"failures"`
}

// ThresholdEvent is emitted after a message that leaves the failure counter above the threshold.
type ThresholdEvent struct {
	EventBase
	Phase     Phase `json:"phase"`
	Failures  int   `json:"failures"`
	Threshold int   `json:"threshold"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTransition        func(context.Context, *TransitionEvent)
	OnReject            func(context.Context, *RejectEvent)
	OnThresholdExceeded func(context.Context, *ThresholdEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: func(ctx context.Context, e *TransitionEvent) {
			if h.OnTransition != nil {
				h.OnTransition(ctx, e)
			}
			if other.OnTransition != nil {
				other.OnTransition(ctx, e)
			}
		},
		OnReject: func(ctx context.Context, e *RejectEvent) {
			if h.OnReject != nil {
				h.OnReject(ctx, e)
			}
			if other.OnReject != nil {
				other.OnReject(ctx, e)
			}
		},
		OnThresholdExceeded: func(ctx context.Context, e *ThresholdEvent) {
			if h.OnThresholdExceeded != nil {
				h.OnThresholdExceeded(ctx, e)
			}
			if other.OnThresholdExceeded != nil {
				other.OnThresholdExceeded(ctx, e)
			}
		},
	}
}
