package http

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
)

type errorBody struct {
	Error string `json:"error"`
}

// InputRequest carries the input of a run: either a string tokenized against the
// alphabet, or explicit tokens.
type InputRequest struct {
	Input      *string                `json:"input,omitempty"`
	Tokens     *[]string              `json:"tokens,omitempty"`
	Acceptance *domain.AcceptanceMode `json:"acceptance,omitempty"`
}

// SimulateRequest runs an inline definition.
type SimulateRequest struct {
	InputRequest
	Definition map[string]any `json:"definition"`
}

// DefinitionRequest carries an inline definition.
type DefinitionRequest struct {
	Definition map[string]any `json:"definition"`
}

// ConvertRequest asks for an equivalent automaton of another kind.
type ConvertRequest struct {
	Definition map[string]any `json:"definition"`
	Target     string         `json:"target"`
}

// CompileRequest holds a regular expression.
type CompileRequest struct {
	Pattern string `json:"pattern"`
}

// AutomatonResponse describes one automaton.
type AutomatonResponse struct {
	Stage      string            `json:"stage,omitempty"`
	Kind       domain.Kind       `json:"kind"`
	States     int               `json:"states"`
	Definition domain.Definition `json:"definition"`
}

// CompileResponse lists the stages of a regex compilation.
type CompileResponse struct {
	Pattern string              `json:"pattern"`
	AST     string              `json:"ast"`
	Stages  []AutomatonResponse `json:"stages"`
}

// Snapshot is a Configuration with state names resolved.
type Snapshot struct {
	Step      int      `json:"step"`
	Symbol    string   `json:"symbol,omitempty"`
	States    []string `json:"states"`
	Remaining []string `json:"remaining"`
	Stack     []string `json:"stack,omitempty"`
	Output    []string `json:"output,omitempty"`
}

// SimulateResponse is the outcome of a run. Error is set when the run stopped early.
type SimulateResponse struct {
	Kind          domain.Kind      `json:"kind"`
	Verdict       simulate.Verdict `json:"verdict"`
	Accepted      bool             `json:"accepted"`
	Outputs       []string         `json:"outputs,omitempty"`
	InitialOutput string           `json:"initial_output,omitempty"`
	Steps         int              `json:"steps"`
	Branches      int              `json:"branches,omitempty"`
	Trace         []Snapshot       `json:"trace"`
	Error         string           `json:"error,omitempty"`
}

func mapAutomaton(stage string, a *domain.Automaton) AutomatonResponse {
	return AutomatonResponse{
		Stage:      stage,
		Kind:       a.Kind(),
		States:     a.Len(),
		Definition: a.Definition(),
	}
}

func mapResult(a *domain.Automaton, res *simulate.Result) SimulateResponse {
	out := SimulateResponse{
		Kind:          res.Kind,
		Verdict:       res.Verdict,
		Accepted:      res.Accepted,
		Outputs:       res.Outputs,
		InitialOutput: res.InitialOutput,
		Steps:         res.Steps,
		Branches:      res.Branches,
		Trace:         make([]Snapshot, len(res.Trace)),
	}
	for i, cfg := range res.Trace {
		out.Trace[i] = Snapshot{
			Step:      cfg.Step,
			Symbol:    cfg.Symbol,
			States:    a.Names(cfg.States),
			Remaining: cfg.Remaining,
			Stack:     cfg.Stack,
			Output:    cfg.Output,
		}
	}
	return out
}
