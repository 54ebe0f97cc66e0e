package table

import (
	"fmt"
	"regexp"
)

// Regex is a pattern that accepts a message when the expression matches at its start.
type Regex struct {
	expr string
	re   *regexp.Regexp
}

// NewRegex compiles expr as a prefix-anchored pattern.
func NewRegex(expr string) (*Regex, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &Regex{expr: expr, re: re}, nil
}

// MustRegex is like NewRegex but panics on an invalid expression.
// Intended for protocol tables declared in code.
func MustRegex(expr string) *Regex {
	r, err := NewRegex(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// Match reports whether msg starts with a match of the expression.
func (r *Regex) Match(msg string) bool {
	return r.re.MatchString(msg)
}

// String returns the expression as declared.
func (r *Regex) String() string {
	return r.expr
}
