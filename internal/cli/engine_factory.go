package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
)

// Options holds the flags shared by every command.
type Options struct {
	// Dir is the catalog directory used to resolve definitions by name.
	// Empty means files only.
	Dir        string
	Debug      bool
	LogLevel   string
	LogFormat  string
	StepLimit  int
	Acceptance string

	// Stderr receives logs (default os.Stderr).
	Stderr io.Writer
}

// NewLogger builds the logger described by opts. Debug wins over LogLevel.
func NewLogger(opts Options) (*slog.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	format, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithFormat(w, level, format), nil
}

// NewEngine initializes an engine with standard CLI conventions: the catalog in
// opts.Dir as source and, in debug mode, one log record per stage and run.
func NewEngine(opts Options, logger *slog.Logger, extra ...automata.Option) (*automata.Engine, error) {
	engineOpts := []automata.Option{automata.WithLogger(logger)}

	if opts.Debug {
		engineOpts = append(engineOpts, automata.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	if opts.StepLimit > 0 {
		engineOpts = append(engineOpts, automata.WithStepLimit(opts.StepLimit))
	}
	if opts.Acceptance != "" {
		mode, err := domain.ParseAcceptance(opts.Acceptance)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, automata.WithAcceptance(mode))
	}
	if opts.Dir != "" {
		loader, err := loam.Open(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("error opening catalog: %w", err)
		}
		engineOpts = append(engineOpts, automata.WithSource(loader))
	}

	// Later options win, so callers can replace the hooks.
	return automata.New(append(engineOpts, extra...)...), nil
}
