package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/qso/internal/runtime"
	"github.com/aretw0/qso/pkg/adapters/memory"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	p := ft8.MustPounce()
	src := memory.NewSource(append(ft8.Messages(ft8.NoisyQSO), "73|X")...)

	res, err := runner.New(runner.WithConversationID("demo")).
		Run(context.Background(), runtime.NewEngine(p.Graph, p.Table), src)
	require.NoError(t, err)

	md := Report(res)
	assert.Contains(t, md, "# QSO demo")
	assert.Contains(t, md, "- **Outcome:** end_of_data")
	assert.Contains(t, md, "`finished` (terminal)")
	assert.Contains(t, md, "| 1 | `CQ BI4VNM PM01` | hear_cq | `t1_hear_a_cq` | 0 |")
	assert.Contains(t, md, "| 2 | `BI 4V DTW PK05` | hear_cq | - | 1 |")
	assert.Contains(t, md, `73\|X`)
	assert.Contains(t, md, "6 ⚠")

	render, err := NewRenderer()
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "QSO demo")
}

func TestReport_Empty(t *testing.T) {
	md := Report(&runner.Result{ConversationID: "x", Outcome: runner.OutcomeEndOfData, Phase: "idle"})
	assert.NotContains(t, md, "| # |")
}

func TestPhaseStyler_Ascii(t *testing.T) {
	style := PhaseStyler(termenv.Ascii)
	assert.Equal(t, "hear_cq", style(ft8.PhaseHeardCQ, true))
}

func TestPrintBanner(t *testing.T) {
	var sb strings.Builder
	PrintBanner(&sb, ft8.Name)
	assert.Contains(t, sb.String(), ft8.Name)
}
