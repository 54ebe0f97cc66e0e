package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/qso/pkg/domain"
)

// TextHandler writes one human-readable line per message.
type TextHandler struct {
	Writer io.Writer
	Styler PhaseStyler
	// Verbose also prints dropped messages.
	Verbose bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerStyler configures how phases are decorated.
func WithTextHandlerStyler(styler PhaseStyler) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styler = styler
	}
}

// WithTextHandlerVerbose prints dropped messages too.
func WithTextHandlerVerbose(verbose bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Verbose = verbose
	}
}

// NewTextHandler creates a text handler writing to w (stdout when nil).
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) style(p domain.Phase, advanced bool) string {
	if h.Styler == nil {
		return string(p)
	}
	return h.Styler(p, advanced)
}

func (h *TextHandler) OnStep(ctx context.Context, msg string, step domain.StepResult) error {
	var err error
	switch {
	case step.Advanced:
		_, err = fmt.Fprintf(h.Writer, "%-22s %s -> %s  [%s]\n",
			msg, step.Previous, h.style(step.Phase, true), step.Transition)
	case h.Verbose:
		_, err = fmt.Fprintf(h.Writer, "%-22s %s (dropped, failures=%d)\n",
			msg, h.style(step.Phase, false), step.Failures)
	}
	if err != nil {
		return err
	}
	if step.ThresholdExceeded {
		_, err = fmt.Fprintln(h.Writer, "Max Fails Exceeded")
	}
	return err
}

func (h *TextHandler) OnFinish(ctx context.Context, res *Result) error {
	_, err := fmt.Fprintf(h.Writer, "Conversation %s ended (%s) in phase %s after %d messages\n",
		res.ConversationID, res.Outcome, h.style(res.Phase, res.Terminal), res.Messages)
	return err
}
