package domain

// Pattern decides whether a normalized message is acceptable.
type Pattern interface {
	Match(msg string) bool
	String() string
}

// Rule binds a pattern to the transition it triggers while the engine is in Phase.
type Rule struct {
	Phase      Phase
	Pattern    Pattern
	Transition TransitionID
}
