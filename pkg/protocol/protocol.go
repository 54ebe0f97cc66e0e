// Package protocol loads and exports protocol definitions: the phases, transitions
// and match rules a conversation engine runs on.
package protocol

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/dsl"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/aretw0/qso/pkg/table"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Protocol is a compiled, immutable protocol.
type Protocol struct {
	Name  string
	Graph *graph.Graph
	Table *table.Table
}

// Definition is the serializable form of a protocol.
// It uses "mapstructure" tags so it can be decoded from any generic document.
type Definition struct {
	Name        string           `yaml:"name" json:"name" mapstructure:"name"`
	Initial     string           `yaml:"initial" json:"initial" mapstructure:"initial"`
	Phases      []string         `yaml:"phases" json:"phases" mapstructure:"phases"`
	Transitions []TransitionSpec `yaml:"transitions" json:"transitions" mapstructure:"transitions"`
	Rules       []RuleSpec       `yaml:"rules" json:"rules" mapstructure:"rules"`
}

// TransitionSpec is a declared edge.
type TransitionSpec struct {
	ID   string `yaml:"id" json:"id" mapstructure:"id"`
	From string `yaml:"from" json:"from" mapstructure:"from"`
	To   string `yaml:"to" json:"to" mapstructure:"to"`
}

// RuleSpec is a match rule. Pattern is a regular expression anchored at the start of the message.
type RuleSpec struct {
	Phase      string `yaml:"phase" json:"phase" mapstructure:"phase"`
	Pattern    string `yaml:"pattern" json:"pattern" mapstructure:"pattern"`
	Transition string `yaml:"transition" json:"transition" mapstructure:"transition"`
}

// Decode converts a generic document (e.g. parsed YAML or JSON) into a Definition.
// Unknown keys are rejected to catch typos in hand-written protocol files.
func Decode(raw map[string]any) (*Definition, error) {
	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode protocol definition: %w", err)
	}
	return &def, nil
}

// Parse reads a YAML (or JSON, which is valid YAML) protocol definition.
func Parse(data []byte) (*Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse protocol: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse protocol: empty document")
	}
	return Decode(raw)
}

// LoadFile reads and compiles a protocol file.
func LoadFile(path string) (*Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read protocol: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def.Build()
}

// Build compiles the definition.
// When Phases is given, the initial phase, every transition endpoint and every rule
// phase must be one of them.
func (d *Definition) Build() (*Protocol, error) {
	if err := d.checkPhases(); err != nil {
		return nil, fmt.Errorf("protocol %q: %w", d.Name, err)
	}

	b := dsl.New()
	for _, p := range d.Phases {
		b.Phase(domain.Phase(p))
	}
	if d.Initial != "" {
		b.Phase(domain.Phase(d.Initial)).Initial()
	}
	for _, t := range d.Transitions {
		b.Transition(domain.TransitionID(t.ID), domain.Phase(t.From), domain.Phase(t.To))
	}
	for _, r := range d.Rules {
		b.Rule(domain.Phase(r.Phase), r.Pattern, domain.TransitionID(r.Transition))
	}

	g, t, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("protocol %q: %w", d.Name, err)
	}
	return &Protocol{Name: d.Name, Graph: g, Table: t}, nil
}

func (d *Definition) checkPhases() error {
	if len(d.Phases) == 0 {
		return nil
	}
	declared := make(map[string]bool, len(d.Phases))
	for _, p := range d.Phases {
		declared[p] = true
	}

	var errs []error
	undeclared := func(where, p string) {
		if !declared[p] {
			errs = append(errs, fmt.Errorf("%s %q: %w", where, p, domain.ErrUnknownPhase))
		}
	}
	if d.Initial != "" {
		undeclared("initial phase", d.Initial)
	}
	for _, t := range d.Transitions {
		undeclared(fmt.Sprintf("transition %q source", t.ID), t.From)
		undeclared(fmt.Sprintf("transition %q destination", t.ID), t.To)
	}
	for i, r := range d.Rules {
		undeclared(fmt.Sprintf("rule %d phase", i), r.Phase)
	}
	return errors.Join(errs...)
}

// Export converts a compiled protocol back into its serializable form.
func Export(p *Protocol) *Definition {
	def := &Definition{
		Name:    p.Name,
		Initial: string(p.Graph.Initial()),
	}
	for _, ph := range p.Graph.Phases() {
		def.Phases = append(def.Phases, string(ph))
	}
	for _, t := range p.Graph.Transitions() {
		def.Transitions = append(def.Transitions, TransitionSpec{ID: string(t.ID), From: string(t.From), To: string(t.To)})
	}
	for _, r := range p.Table.Rules() {
		def.Rules = append(def.Rules, RuleSpec{Phase: string(r.Phase), Pattern: r.Pattern.String(), Transition: string(r.Transition)})
	}
	return def
}

// YAML renders the definition as a YAML document.
func (d *Definition) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
