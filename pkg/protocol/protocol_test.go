package protocol_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/qso/internal/runtime"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Legacy(t *testing.T) {
	p, err := protocol.LoadFile(filepath.Join("testdata", "legacy.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ft8-legacy", p.Name)
	assert.Equal(t, domain.Phase("listen_for_activity"), p.Graph.Initial())
	assert.Len(t, p.Graph.Phases(), 8)
	assert.Equal(t, 7, p.Table.Len())

	e := runtime.NewEngine(p.Graph, p.Table)
	msgs := ft8.Messages(ft8.GoodQSO)
	for _, msg := range msgs {
		res, err := e.Step(t.Context(), msg)
		require.NoError(t, err)
		require.True(t, res.Advanced, msg)
	}

	// The six-message exchange stops one short of the terminal phase.
	assert.Equal(t, domain.Phase("send_bye"), e.CurrentPhase())
	assert.False(t, e.IsTerminal())

	res, err := e.Step(t.Context(), msgs[len(msgs)-1])
	require.NoError(t, err)
	assert.Equal(t, domain.TransitionID("t7_end_qso"), res.Transition)
	assert.True(t, e.IsTerminal())
}

func TestLoadFile_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
initial: a
phases: [a, b]
transitions:
  - { id: go, from: a, to: b }
rules:
  - { phase: a, pattern: GO, transition: go }
`), 0o644))

	p, err := protocol.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", p.Name)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := protocol.LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = protocol.LoadFile(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patern")
}

func TestLoadFile_UndeclaredPhases(t *testing.T) {
	_, err := protocol.LoadFile(filepath.Join("testdata", "undeclared.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownPhase)
	assert.ErrorContains(t, err, `transition "go" destination "bb"`)
	assert.ErrorContains(t, err, `rule 0 phase "zz"`)
}

func TestDefinition_Build_UndeclaredInitial(t *testing.T) {
	def := protocol.Definition{
		Name:        "x",
		Initial:     "start",
		Phases:      []string{"a", "b"},
		Transitions: []protocol.TransitionSpec{{ID: "go", From: "a", To: "b"}},
	}
	_, err := def.Build()
	assert.ErrorIs(t, err, domain.ErrUnknownPhase)
	assert.ErrorContains(t, err, `initial phase "start"`)
}

func TestParse(t *testing.T) {
	_, err := protocol.Parse([]byte(""))
	assert.ErrorContains(t, err, "empty document")

	_, err = protocol.Parse([]byte("name: [unterminated"))
	assert.Error(t, err)

	def, err := protocol.Parse([]byte(`{"name": "json", "initial": "a", "phases": ["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, "json", def.Name)
	assert.Equal(t, []string{"a"}, def.Phases)
}

func TestDefinition_Build_Invalid(t *testing.T) {
	tests := []struct {
		name string
		def  protocol.Definition
	}{
		{
			name: "no initial phase",
			def:  protocol.Definition{Name: "x", Phases: []string{"a"}},
		},
		{
			name: "bad pattern",
			def: protocol.Definition{
				Name:        "x",
				Initial:     "a",
				Phases:      []string{"a", "b"},
				Transitions: []protocol.TransitionSpec{{ID: "go", From: "a", To: "b"}},
				Rules:       []protocol.RuleSpec{{Phase: "a", Pattern: "(", Transition: "go"}},
			},
		},
		{
			name: "unknown transition",
			def: protocol.Definition{
				Name:    "x",
				Initial: "a",
				Phases:  []string{"a"},
				Rules:   []protocol.RuleSpec{{Phase: "a", Pattern: "GO", Transition: "nope"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Build()
			assert.ErrorContains(t, err, `protocol "x"`)
		})
	}
}

func TestExport_RoundTrip(t *testing.T) {
	def := protocol.Export(ft8.MustPounce())
	assert.Equal(t, ft8.Name, def.Name)
	assert.Equal(t, string(ft8.PhaseListening), def.Initial)
	assert.Len(t, def.Transitions, 6)
	assert.Len(t, def.Rules, 6)

	data, err := def.YAML()
	require.NoError(t, err)

	parsed, err := protocol.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, def, parsed)

	p, err := parsed.Build()
	require.NoError(t, err)

	e := runtime.NewEngine(p.Graph, p.Table)
	for _, msg := range ft8.Messages(ft8.GoodQSO) {
		_, err := e.Step(t.Context(), msg)
		require.NoError(t, err)
	}
	assert.Equal(t, ft8.PhaseFinished, e.CurrentPhase())
}
