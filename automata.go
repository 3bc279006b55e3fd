package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/definition"
	"github.com/aretw0/automata/pkg/construct"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/simulate"
)

// Engine is the high-level entry point of the library.
// It wires the construction pipeline and the simulator to a logger and lifecycle hooks.
type Engine struct {
	source  ports.DefinitionSource
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	simOpts []simulate.Option
	sim     *simulate.Engine
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSource lets Load resolve definitions by name from a catalog.
func WithSource(src ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithStepLimit bounds PDA searches (default simulate.DefaultStepLimit).
func WithStepLimit(n int) Option {
	return func(e *Engine) {
		e.simOpts = append(e.simOpts, simulate.WithStepLimit(n))
	}
}

// WithAcceptance overrides the acceptance mode declared by PDAs.
func WithAcceptance(mode domain.AcceptanceMode) Option {
	return func(e *Engine) {
		e.simOpts = append(e.simOpts, simulate.WithAcceptance(mode))
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.sim = simulate.New(append(e.simOpts, simulate.WithLogger(e.logger))...)
	return e
}

// Compile runs a pattern through Thompson construction, ε-removal, subset
// construction and minimization, reporting each stage to the OnConvert hook.
func (e *Engine) Compile(ctx context.Context, pattern string) (*construct.Pipeline, error) {
	p, err := construct.CompileWith(pattern, func(name string, from domain.Kind, build func() (*domain.Automaton, error)) (*domain.Automaton, error) {
		return e.stage(ctx, name, from, build)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("regex compiled", "pattern", pattern, "dfa_states", p.DFA.Len(), "minimal_states", p.Minimal.Len())
	return p, nil
}

func (e *Engine) stage(ctx context.Context, name string, from domain.Kind, build func() (*domain.Automaton, error)) (*domain.Automaton, error) {
	start := time.Now()
	a, err := build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if e.hooks.OnConvert != nil {
		e.hooks.OnConvert(ctx, &domain.ConversionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventConvert},
			Stage:     name,
			From:      from,
			To:        a.Kind(),
			States:    a.Len(),
			Duration:  time.Since(start),
		})
	}
	return a, nil
}

// Build validates a definition and returns the automaton.
func (e *Engine) Build(def domain.Definition) (*domain.Automaton, error) {
	a, err := domain.New(def)
	if err != nil {
		e.logger.Warn("invalid definition", "name", def.Name, "error", err)
		return nil, err
	}
	return a, nil
}

// LoadFile reads a JSON, YAML or text definition from disk.
func (e *Engine) LoadFile(path string) (*domain.Automaton, error) {
	def, err := definition.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = path
	}
	return e.Build(def)
}

// Load resolves a named definition from the configured source.
func (e *Engine) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	if e.source == nil {
		return nil, fmt.Errorf("load %q: no definition source configured", name)
	}
	def, err := e.source.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = name
	}
	return e.Build(def)
}

// Convert turns a into an equivalent automaton of the target kind.
// See construct.Convert for the supported paths.
func (e *Engine) Convert(ctx context.Context, a *domain.Automaton, target domain.Kind) (*domain.Automaton, error) {
	out, err := e.stage(ctx, "convert", a.Kind(), func() (*domain.Automaton, error) {
		return construct.Convert(a, target)
	})
	if err != nil {
		return nil, err
	}
	return out.WithLabel(a.Label()), nil
}

// Minimize returns the minimal DFA of a, determinizing NFAs and ε-NFAs first.
func (e *Engine) Minimize(ctx context.Context, a *domain.Automaton) (*domain.Automaton, error) {
	dfa := a
	if a.Kind() == domain.KindNFA || a.Kind() == domain.KindENFA {
		var err error
		if dfa, err = e.stage(ctx, "subset", a.Kind(), func() (*domain.Automaton, error) {
			return construct.Determinize(a)
		}); err != nil {
			return nil, err
		}
	}
	out, err := e.stage(ctx, "minimize", dfa.Kind(), func() (*domain.Automaton, error) {
		return construct.Minimize(dfa)
	})
	if err != nil {
		return nil, err
	}
	return out.WithLabel(a.Label()), nil
}

// Simulate runs a over a tokenized input.
// The partial result is returned together with NoTransition and StepLimit errors.
func (e *Engine) Simulate(ctx context.Context, a *domain.Automaton, input []string) (*simulate.Result, error) {
	start := time.Now()
	res, err := e.sim.Run(ctx, a, input)

	if e.hooks.OnSimulate != nil {
		evt := &domain.SimulationEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSimulate},
			Automaton: a.Label(),
			Kind:      a.Kind(),
			Duration:  time.Since(start),
			Err:       err,
		}
		if res != nil {
			evt.Accepted = res.Accepted
			evt.Steps = res.Steps
		}
		e.hooks.OnSimulate(ctx, evt)
	}
	if err != nil {
		e.logger.Info("simulation stopped", "automaton", a.Label(), "error", err)
	}
	return res, err
}

// SimulateString tokenizes input against the alphabet of a and runs it.
func (e *Engine) SimulateString(ctx context.Context, a *domain.Automaton, input string) (*simulate.Result, error) {
	return e.Simulate(ctx, a, simulate.Tokenize(a, input))
}

var _ ports.Engine = (*Engine)(nil)
