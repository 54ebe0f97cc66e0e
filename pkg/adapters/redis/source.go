package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the list decoders push messages to.
const DefaultKey = "qso:messages"

// Source implements ports.MessageSource over a Redis list.
//
// With a zero wait the list is drained with LPOP and an empty list ends the
// conversation. With a positive wait BLPOP blocks up to that long and an idle list
// ends the conversation. Either way, an optional end marker ends it explicitly.
type Source struct {
	client    *backend.Client
	key       string
	wait      time.Duration
	endMarker string
	extract   func(string) (string, bool)

	mu   sync.Mutex
	done bool
}

type Option func(*Source)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(s *Source) {
		s.key = key
	}
}

// WithWait makes Next block up to d for a message.
func WithWait(d time.Duration) Option {
	return func(s *Source) {
		s.wait = d
	}
}

// WithEndMarker sets a payload that signals the end of the conversation.
func WithEndMarker(marker string) Option {
	return func(s *Source) {
		s.endMarker = marker
	}
}

// WithExtractor sets how list entries become messages.
// Entries the extractor rejects are skipped.
func WithExtractor(fn func(string) (string, bool)) Option {
	return func(s *Source) {
		s.extract = fn
	}
}

// New creates a source reading from a new client.
func New(address, password string, db int, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	s := &Source{
		client:  client,
		key:     DefaultKey,
		extract: ft8.ExtractWith(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next pops the next message.
func (s *Source) Next(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if s.done {
			return "", domain.ErrEndOfData
		}

		raw, err := s.pop(ctx)
		if errors.Is(err, backend.Nil) {
			s.done = true
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read from redis: %w", err)
		}

		if s.endMarker != "" && raw == s.endMarker {
			s.done = true
			continue
		}

		if msg, ok := s.extract(raw); ok {
			return msg, nil
		}
	}
}

func (s *Source) pop(ctx context.Context) (string, error) {
	if s.wait <= 0 {
		return s.client.LPop(ctx, s.key).Result()
	}
	res, err := s.client.BLPop(ctx, s.wait, s.key).Result()
	if err != nil {
		return "", err
	}
	// BLPOP replies with [key, value].
	return res[1], nil
}

// Push appends messages to the list. It is the producer side of the source.
func (s *Source) Push(ctx context.Context, msgs ...string) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]any, len(msgs))
	for i, m := range msgs {
		values[i] = m
	}
	if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("failed to push to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Source) Close() error {
	return s.client.Close()
}
