package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/qso/pkg/runner"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects light/dark backgrounds automatically.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Report formats a finished run as a markdown document.
func Report(res *runner.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# QSO %s\n\n", res.ConversationID)
	fmt.Fprintf(&sb, "- **Outcome:** %s\n", res.Outcome)
	fmt.Fprintf(&sb, "- **Final phase:** `%s`", res.Phase)
	if res.Terminal {
		sb.WriteString(" (terminal)")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- **Messages:** %d (%d advanced, %d dropped)\n", res.Messages, res.Advances, res.Dropped)
	fmt.Fprintf(&sb, "- **Threshold events:** %d\n\n", res.ThresholdEvents)

	if len(res.Transcript) == 0 {
		return sb.String()
	}

	sb.WriteString("| # | Message | Phase | Transition | Failures |\n")
	sb.WriteString("|---|---------|-------|------------|----------|\n")
	for i, e := range res.Transcript {
		transition := "-"
		if e.Step.Advanced {
			transition = "`" + string(e.Step.Transition) + "`"
		}
		failures := fmt.Sprintf("%d", e.Step.Failures)
		if e.Step.ThresholdExceeded {
			failures += " ⚠"
		}
		fmt.Fprintf(&sb, "| %d | `%s` | %s | %s | %s |\n",
			i+1, escapeCell(e.Message), e.Step.Phase, transition, failures)
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "`", "'")
}
