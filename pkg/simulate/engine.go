package simulate

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// DefaultStepLimit bounds the number of PDA configurations expanded by a single run.
const DefaultStepLimit = 10000

// Verdict summarizes the outcome of a run.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
	VerdictOutput Verdict = "output"
)

// Result is the outcome of a run.
type Result struct {
	Kind     domain.Kind `json:"kind"`
	Verdict  Verdict     `json:"verdict"`
	Accepted bool        `json:"accepted"`

	// Outputs holds one symbol per consumed input for transducers.
	Outputs []string `json:"outputs,omitempty"`

	// InitialOutput is the output of the Moore start state, emitted before any input.
	InitialOutput string `json:"initial_output,omitempty"`

	// Trace holds one snapshot per step. For a PDA it is the accepting path, or the
	// deepest explored path when the input was rejected.
	Trace []Configuration `json:"trace"`

	// Steps counts consumed symbols for finite machines and expanded configurations for a PDA.
	Steps int `json:"steps"`

	// Branches counts the PDA configurations generated during the search.
	Branches int `json:"branches,omitempty"`
}

// Final returns the last snapshot of the trace.
func (r *Result) Final() Configuration {
	if len(r.Trace) == 0 {
		return Configuration{}
	}
	return r.Trace[len(r.Trace)-1]
}

// Engine runs automata. It holds no per-run state and may be shared.
type Engine struct {
	stepLimit  int
	acceptance domain.AcceptanceMode
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStepLimit bounds the PDA search. Values below 1 restore the default.
func WithStepLimit(n int) Option {
	return func(e *Engine) {
		e.stepLimit = n
	}
}

// WithAcceptance overrides the acceptance mode declared by PDAs.
func WithAcceptance(mode domain.AcceptanceMode) Option {
	return func(e *Engine) {
		e.acceptance = mode
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.stepLimit < 1 {
		e.stepLimit = DefaultStepLimit
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// StepLimit returns the effective PDA step bound.
func (e *Engine) StepLimit() int { return e.stepLimit }

// Run executes a over input.
//
// Errors are *domain.NoTransitionError for transducers (and total DFAs) hitting an
// undefined transition, and *domain.StepLimitError for a PDA search that was cut off.
// In both cases the partial Result is returned alongside the error.
func (e *Engine) Run(ctx context.Context, a *domain.Automaton, input []string) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch a.Kind() {
	case domain.KindPDA:
		res, err = e.runPDA(ctx, a, input)
	case domain.KindDFA, domain.KindNFA, domain.KindENFA, domain.KindMealy, domain.KindMoore:
		res, err = e.runFinite(ctx, a, input)
	default:
		return nil, fmt.Errorf("run %s: %w", a.Kind(), domain.ErrKindMismatch)
	}

	if res != nil {
		e.logger.Debug("simulation finished",
			"kind", a.Kind(),
			"verdict", res.Verdict,
			"steps", res.Steps,
			"error", err,
		)
	}
	return res, err
}

func (e *Engine) runFinite(ctx context.Context, a *domain.Automaton, input []string) (*Result, error) {
	res := &Result{Kind: a.Kind()}
	cfg := Initial(a, input)
	if a.Kind() == domain.KindMoore {
		res.InitialOutput = a.Output(a.Start())
	}
	res.Trace = []Configuration{cfg}

	for len(cfg.Remaining) > 0 && !cfg.Stuck() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		next, err := Advance(a, cfg)
		if err != nil {
			res.Verdict = VerdictReject
			res.Outputs = cfg.Output
			res.Steps = cfg.Consumed
			return res, err
		}
		cfg = next
		res.Trace = append(res.Trace, cfg)
	}

	res.Steps = cfg.Consumed
	res.Outputs = cfg.Output
	if a.Kind().Transducer() {
		res.Verdict = VerdictOutput
		res.Accepted = len(cfg.Remaining) == 0
		return res, nil
	}

	for _, q := range cfg.States {
		if a.IsAccepting(q) && len(cfg.Remaining) == 0 {
			res.Accepted = true
			break
		}
	}
	res.Verdict = VerdictReject
	if res.Accepted {
		res.Verdict = VerdictAccept
	}
	return res, nil
}

// Accepts is a convenience wrapper around Run for acceptors.
func (e *Engine) Accepts(ctx context.Context, a *domain.Automaton, input []string) (bool, error) {
	res, err := e.Run(ctx, a, input)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}
