package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/qso/pkg/domain"
)

// JSONHandler emits structured JSON-Lines: one object per step and a final summary.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w (stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

type stepLine struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Step    domain.StepResult `json:"step"`
}

type summaryLine struct {
	Type           string       `json:"type"`
	ConversationID string       `json:"conversation_id"`
	Outcome        Outcome      `json:"outcome"`
	Phase          domain.Phase `json:"phase"`
	Terminal       bool         `json:"terminal"`
	Messages       int          `json:"messages"`
	Advances       int          `json:"advances"`
	Dropped        int          `json:"dropped"`
	Threshold      int          `json:"threshold_events"`
}

func (h *JSONHandler) OnStep(ctx context.Context, msg string, step domain.StepResult) error {
	return h.Encoder.Encode(stepLine{Type: "step", Message: msg, Step: step})
}

func (h *JSONHandler) OnFinish(ctx context.Context, res *Result) error {
	return h.Encoder.Encode(summaryLine{
		Type:           "summary",
		ConversationID: res.ConversationID,
		Outcome:        res.Outcome,
		Phase:          res.Phase,
		Terminal:       res.Terminal,
		Messages:       res.Messages,
		Advances:       res.Advances,
		Dropped:        res.Dropped,
		Threshold:      res.ThresholdEvents,
	})
}
