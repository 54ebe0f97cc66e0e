package domain

// Phase is an opaque identifier naming one stage of the conversation.
type Phase string

// String implements fmt.Stringer.
func (p Phase) String() string {
	return string(p)
}
