package memory

import (
	"context"
	"sync"

	"github.com/aretw0/qso/pkg/domain"
)

// Source implements ports.MessageSource over a fixed list of messages.
// Safe for concurrent use.
type Source struct {
	msgs []string
	pos  int
	mu   sync.Mutex
}

// NewSource creates a source that yields msgs in order.
// The messages are used as given; normalize them first if needed.
func NewSource(msgs ...string) *Source {
	copied := make([]string, len(msgs))
	copy(copied, msgs)
	return &Source{msgs: copied}
}

// Next returns the next message or domain.ErrEndOfData.
func (s *Source) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.msgs) {
		return "", domain.ErrEndOfData
	}
	msg := s.msgs[s.pos]
	s.pos++
	return msg, nil
}

// Remaining returns how many messages have not been consumed yet.
func (s *Source) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs) - s.pos
}
