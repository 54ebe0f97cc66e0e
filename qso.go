package qso

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/qso/internal/runtime"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/graph"
	"github.com/aretw0/qso/pkg/ports"
	"github.com/aretw0/qso/pkg/protocol"
	"github.com/aretw0/qso/pkg/runner"
	"github.com/aretw0/qso/pkg/table"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and tracks a single conversation.
type Engine struct {
	runtime      *runtime.Engine
	protocol     *protocol.Protocol
	protocolFile string
	threshold    int
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
}

var _ ports.Engine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithProtocol runs the engine on a compiled protocol instead of the built-in FT8 pounce table.
func WithProtocol(p *protocol.Protocol) Option {
	return func(e *Engine) {
		e.protocol = p
	}
}

// WithProtocolFile loads the protocol from a YAML definition file.
func WithProtocolFile(path string) Option {
	return func(e *Engine) {
		e.protocolFile = path
	}
}

// WithThreshold sets the failure threshold (default 3).
func WithThreshold(n int) Option {
	return func(e *Engine) {
		e.threshold = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an engine in the protocol's initial phase.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{threshold: domain.DefaultFailureThreshold}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.threshold < 0 {
		return nil, fmt.Errorf("invalid failure threshold %d", eng.threshold)
	}

	if eng.protocol == nil && eng.protocolFile != "" {
		p, err := protocol.LoadFile(eng.protocolFile)
		if err != nil {
			return nil, err
		}
		eng.protocol = p
	}
	if eng.protocol == nil {
		p, err := ft8.Pounce()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s protocol: %w", ft8.Name, err)
		}
		eng.protocol = p
	}

	rtOpts := []runtime.EngineOption{
		runtime.WithThreshold(eng.threshold),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	if eng.logger != nil {
		rtOpts = append(rtOpts, runtime.WithLogger(eng.logger.With("protocol", eng.protocol.Name)))
	}
	eng.runtime = runtime.NewEngine(eng.protocol.Graph, eng.protocol.Table, rtOpts...)

	return eng, nil
}

// CurrentPhase returns the phase the conversation is in.
func (e *Engine) CurrentPhase() domain.Phase {
	return e.runtime.CurrentPhase()
}

// Failures returns the current failure counter.
func (e *Engine) Failures() int {
	return e.runtime.Failures()
}

// Threshold returns the failure threshold.
func (e *Engine) Threshold() int {
	return e.runtime.Threshold()
}

// IsTerminal reports whether the current phase has no rules.
func (e *Engine) IsTerminal() bool {
	return e.runtime.IsTerminal()
}

// Step processes one message.
func (e *Engine) Step(ctx context.Context, msg string) (domain.StepResult, error) {
	return e.runtime.Step(ctx, msg)
}

// Run drives the engine from src until it is exhausted or a runner stop condition holds.
func (e *Engine) Run(ctx context.Context, src ports.MessageSource, opts ...runner.Option) (*runner.Result, error) {
	if e.logger != nil {
		opts = append([]runner.Option{runner.WithLogger(e.logger)}, opts...)
	}
	return runner.New(opts...).Run(ctx, e, src)
}

// Protocol returns the compiled protocol.
func (e *Engine) Protocol() *protocol.Protocol {
	return e.protocol
}

// Graph returns the phase graph.
func (e *Engine) Graph() *graph.Graph {
	return e.protocol.Graph
}

// Table returns the match table.
func (e *Engine) Table() *table.Table {
	return e.protocol.Table
}
