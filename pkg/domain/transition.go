package domain

// TransitionID uniquely identifies a transition within a phase graph.
type TransitionID string

// Transition is a directed edge between two phases.
// It may only be applied while the engine sits in From.
type Transition struct {
	ID   TransitionID `json:"id" yaml:"id"`
	From Phase        `json:"from" yaml:"from"`
	To   Phase        `json:"to" yaml:"to"`
}
