package runner

import "github.com/aretw0/qso/pkg/domain"

// Outcome tells why a run ended. It is never a phase value.
type Outcome string

const (
	// OutcomeEndOfData means the message source ran dry.
	OutcomeEndOfData Outcome = "end_of_data"
	// OutcomeTerminal means the engine reached a terminal phase and the runner was told to stop there.
	OutcomeTerminal Outcome = "terminal"
	// OutcomeThresholdAborted means the runner was told to stop on a failure-threshold event.
	OutcomeThresholdAborted Outcome = "threshold_aborted"
)

// Entry is one processed message.
type Entry struct {
	Message string            `json:"message"`
	Step    domain.StepResult `json:"step"`
}

// Result summarizes a run.
type Result struct {
	ConversationID  string       `json:"conversation_id"`
	Outcome         Outcome      `json:"outcome"`
	Phase           domain.Phase `json:"phase"`
	Terminal        bool         `json:"terminal"`
	Messages        int          `json:"messages"`
	Advances        int          `json:"advances"`
	Dropped         int          `json:"dropped"`
	ThresholdEvents int          `json:"threshold_events"`
	Transcript      []Entry      `json:"transcript"`
}

func (r *Result) record(msg string, step domain.StepResult) {
	r.Messages++
	if step.Advanced {
		r.Advances++
	} else {
		r.Dropped++
	}
	if step.ThresholdExceeded {
		r.ThresholdEvents++
	}
	r.Phase = step.Phase
	r.Transcript = append(r.Transcript, Entry{Message: msg, Step: step})
}
