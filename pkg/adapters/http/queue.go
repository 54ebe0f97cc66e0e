package http

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/qso/pkg/domain"
)

// ErrQueueClosed is returned when submitting to a closed queue.
var ErrQueueClosed = errors.New("message queue closed")

// Queue is a ports.MessageSource fed by HTTP submissions.
// Submitters block while the buffer is full until a message is consumed, the queue
// is closed or their context ends. Close ends the conversation once the buffered
// messages have been consumed.
type Queue struct {
	ch   chan string
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue buffering up to size messages.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		ch:   make(chan string, size),
		done: make(chan struct{}),
	}
}

// Submit enqueues a normalized message.
func (q *Queue) Submit(ctx context.Context, msg string) error {
	if q.Closed() {
		return ErrQueueClosed
	}
	select {
	case q.ch <- msg:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting messages and releases blocked submitters.
// It never blocks and is safe to call more than once.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Closed reports whether Close was called.
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Next blocks until a message is submitted, the queue is closed and drained, or ctx ends.
func (q *Queue) Next(ctx context.Context) (string, error) {
	select {
	case msg := <-q.ch:
		return msg, nil
	case <-q.done:
		select {
		case msg := <-q.ch:
			return msg, nil
		default:
			return "", domain.ErrEndOfData
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
