// Package stream reads conversation messages from line-oriented decoder output,
// such as a decoder log file or a pipe from a running decoder.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/qso/internal/logging"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
)

// MaxLineLength is the longest record line read. Longer lines are skipped as malformed.
const MaxLineLength = 64 * 1024

// Source implements ports.MessageSource over an io.Reader, one record per line.
type Source struct {
	reader  *bufio.Reader
	extract func(string) (string, bool)
	logger  *slog.Logger
	line    int

	mu   sync.Mutex
	done bool
}

type Option func(*Source)

// WithExtractor sets how a record line becomes a message. Rejected lines are skipped.
func WithExtractor(fn func(string) (string, bool)) Option {
	return func(s *Source) {
		s.extract = fn
	}
}

// WithSeparator extracts messages after sep instead of the default "~".
func WithSeparator(sep string) Option {
	return WithExtractor(ft8.ExtractWith(sep))
}

// WithLogger sets the logger used to report skipped lines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a source reading records from r.
func New(r io.Reader, opts ...Option) *Source {
	s := &Source{
		reader:  bufio.NewReaderSize(r, MaxLineLength),
		extract: ft8.Extract,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next well-formed message or domain.ErrEndOfData at end of input.
func (s *Source) Next(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.done {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return "", s.finish(err)
		}
		s.line++

		if isPrefix {
			if err := s.discardLine(); err != nil && !errors.Is(err, io.EOF) {
				return "", s.finish(err)
			}
			s.logger.Debug("skipping oversized record", "line", s.line, "max", MaxLineLength)
			continue
		}

		raw := string(line)
		msg, ok := s.extract(raw)
		if !ok {
			s.logger.Debug("skipping malformed record", "line", s.line, "raw", raw)
			continue
		}
		s.logger.Debug("message", "line", s.line, "msg", msg)
		return msg, nil
	}
	return "", domain.ErrEndOfData
}

// discardLine consumes the rest of a line longer than the read buffer.
func (s *Source) discardLine() error {
	for {
		_, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return err
		}
		if !isPrefix {
			return nil
		}
	}
}

func (s *Source) finish(err error) error {
	s.done = true
	if errors.Is(err, io.EOF) {
		return domain.ErrEndOfData
	}
	return fmt.Errorf("failed to read line %d: %w", s.line+1, err)
}
