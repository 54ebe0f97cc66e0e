package domain

// StepResult describes the effect of a single message on the engine.
type StepResult struct {
	// Advanced is true when a rule accepted the message and its transition fired.
	Advanced bool `json:"advanced"`

	// Previous is the phase the engine was in before the message.
	Previous Phase `json:"previous"`

	// Phase is the phase the engine is in after the message.
	Phase Phase `json:"phase"`

	// Transition is the fired transition, empty unless Advanced.
	Transition TransitionID `json:"transition,omitempty"`

	// Rule is the table index of the rule that decided the message, or -1 when
	// no rule for the current phase was reached.
	Rule int `json:"rule"`

	// Failures is the failure counter after the message.
	Failures int `json:"failures"`

	// ThresholdExceeded reports that Failures is above the configured threshold.
	// It is advisory: the engine keeps consuming messages.
	ThresholdExceeded bool `json:"threshold_exceeded"`
}
