package ports

import "context"

// MessageSource produces the messages of a single conversation.
type MessageSource interface {
	// Next blocks until a message is available and returns it trimmed and upper-cased.
	// It returns domain.ErrEndOfData once no further messages exist, and keeps
	// returning it on every later call.
	Next(ctx context.Context) (string, error)
}

// MessageSourceFunc adapts a function to MessageSource.
type MessageSourceFunc func(ctx context.Context) (string, error)

// Next calls f.
func (f MessageSourceFunc) Next(ctx context.Context) (string, error) {
	return f(ctx)
}
