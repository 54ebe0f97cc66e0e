package domain

import "errors"

// ErrEndOfData is returned by a message source once no further messages exist.
// It ends a conversation normally and is not an engine fault.
var ErrEndOfData = errors.New("end of data")

// ErrIllegalTransition is returned when a transition is applied from a phase other than its source.
var ErrIllegalTransition = errors.New("illegal transition")

// ErrUnknownTransition is returned when a transition ID is not declared in the phase graph.
var ErrUnknownTransition = errors.New("unknown transition")

// ErrUnknownPhase is returned when a phase is not declared in the phase graph.
var ErrUnknownPhase = errors.New("unknown phase")
