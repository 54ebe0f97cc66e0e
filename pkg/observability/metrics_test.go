package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/qso/internal/runtime"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/dsl"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	p := ft8.MustPounce()
	e := runtime.NewEngine(p.Graph, p.Table, runtime.WithLifecycleHooks(m.Hooks()))

	ctx := context.Background()
	for _, msg := range append(ft8.Messages(ft8.NoisyQSO), "73") {
		_, err := e.Step(ctx, msg)
		require.NoError(t, err)
	}

	assert.Equal(t, 6, testutil.CollectAndCount(m.Transitions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues(string(ft8.HearCQ), string(ft8.PhaseListening), string(ft8.PhaseHeardCQ))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejects.WithLabelValues(string(ft8.PhaseHeardCQ))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejects.WithLabelValues(string(ft8.PhaseFinished))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThresholdExceeded.WithLabelValues(string(ft8.PhaseFinished))))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Failures))
}

func TestMetrics_FailureGaugeOnIllegalTransition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	b := dsl.New()
	b.Phase("a").Initial()
	b.Transition("ab", "a", "b").Transition("bc", "b", "c")
	b.Rule("b", `NEXT`, "bc")
	b.Rule("a", `GO`, "bc")
	g, tbl, err := b.Build()
	require.NoError(t, err)

	e := runtime.NewEngine(g, tbl, runtime.WithLifecycleHooks(m.Hooks()))
	_, err = e.Step(context.Background(), "GO")
	require.ErrorIs(t, err, domain.ErrIllegalTransition)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejects.WithLabelValues("a")))
}

func TestMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	assert.Panics(t, func() { observability.NewMetrics(reg) })
}
