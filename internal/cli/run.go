package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
)

// Output styles of Simulate.
const (
	OutputReport  = "report"
	OutputSummary = "summary"
	OutputJSON    = "json"
)

// SimulateOptions configures a CLI run.
type SimulateOptions struct {
	// Tokens, when set, is used as input instead of tokenizing the input string.
	Tokens []string
	// Step replays the trace interactively.
	Step   bool
	Output string

	Stdin  io.Reader
	Stdout io.Writer
}

type jsonSnapshot struct {
	Step      int      `json:"step"`
	Symbol    string   `json:"symbol,omitempty"`
	States    []string `json:"states"`
	Remaining []string `json:"remaining"`
	Stack     []string `json:"stack,omitempty"`
	Output    []string `json:"output,omitempty"`
}

type jsonResult struct {
	*simulate.Result
	Trace []jsonSnapshot `json:"trace"`
	Error string         `json:"error,omitempty"`
}

// Simulate runs a over input and writes the outcome.
// A run stopped by NoTransition or the step limit still prints its partial result
// before the error is returned.
func Simulate(ctx context.Context, eng *automata.Engine, a *domain.Automaton, input string, opts SimulateOptions) error {
	tokens := opts.Tokens
	if tokens == nil {
		tokens = simulate.Tokenize(a, input)
	}
	res, runErr := eng.Simulate(ctx, a, tokens)
	if res == nil {
		return runErr
	}

	var err error
	switch {
	case opts.Step:
		r := &automata.Runner{Input: opts.Stdin, Output: opts.Stdout}
		if tui.IsTerminal(opts.Stdout) {
			r.Renderer = tui.NewRenderer()
		}
		err = r.Run(a, res)
	case opts.Output == OutputJSON:
		err = writeJSON(opts.Stdout, a, res, runErr)
	case opts.Output == OutputSummary:
		_, err = fmt.Fprintf(opts.Stdout, "%s %s\n", tui.Verdict(res), automata.Summary(res))
	default:
		err = tui.WriteReport(opts.Stdout, a, res)
	}
	if err != nil {
		return err
	}
	return runErr
}

func writeJSON(w io.Writer, a *domain.Automaton, res *simulate.Result, runErr error) error {
	out := jsonResult{Result: res, Trace: make([]jsonSnapshot, len(res.Trace))}
	for i, cfg := range res.Trace {
		out.Trace[i] = jsonSnapshot{
			Step:      cfg.Step,
			Symbol:    cfg.Symbol,
			States:    a.Names(cfg.States),
			Remaining: cfg.Remaining,
			Stack:     cfg.Stack,
			Output:    cfg.Output,
		}
	}
	if runErr != nil {
		out.Error = runErr.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// SplitTokens parses a comma separated token list. An empty string yields no tokens.
func SplitTokens(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
