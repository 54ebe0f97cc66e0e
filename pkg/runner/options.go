package runner

import "log/slog"

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithHandler configures the step handler.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithStopOnTerminal stops the loop as soon as the engine reaches a terminal phase
// instead of draining the source.
func WithStopOnTerminal(stop bool) Option {
	return func(r *Runner) {
		r.StopOnTerminal = stop
	}
}

// WithAbortOnThreshold stops the loop on the first failure-threshold event.
func WithAbortOnThreshold(abort bool) Option {
	return func(r *Runner) {
		r.AbortOnThreshold = abort
	}
}

// WithConversationID sets the ID reported in logs and results.
// By default a random UUID is generated per run.
func WithConversationID(id string) Option {
	return func(r *Runner) {
		r.ConversationID = id
	}
}
