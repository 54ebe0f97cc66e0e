package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/muesli/termenv"
)

// PrintBanner outputs the QSO banner.
func PrintBanner(w io.Writer, protocol string) {
	p := termenv.ColorProfile()
	title := termenv.String(" qso ").Foreground(p.Color("#0f172a")).Background(p.Color("#34d399")).Bold()
	sub := termenv.String(protocol).Foreground(p.Color("#a78bfa"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", title, sub)
	fmt.Fprintln(w)
}

// PhaseStyler colours phases for terminal output: advanced phases green, unchanged
// phases faint. An Ascii profile leaves them untouched.
func PhaseStyler(profile termenv.Profile) runner.PhaseStyler {
	return func(phase domain.Phase, advanced bool) string {
		s := termenv.String(string(phase))
		if advanced {
			return s.Foreground(profile.Color("#34d399")).Bold().String()
		}
		return s.Faint().String()
	}
}
