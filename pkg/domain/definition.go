package domain

// Definition holds the construction parameters of an automaton, with states and symbols
// referenced by name. It is the shape read from and written to definition files.
type Definition struct {
	Type         Kind            `json:"type" yaml:"type" mapstructure:"type"`
	Name         string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	States       []string        `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet     []string        `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	StartState   string          `json:"start_state" yaml:"start_state" mapstructure:"start_state"`
	AcceptStates []string        `json:"accept_states,omitempty" yaml:"accept_states,omitempty" mapstructure:"accept_states"`
	Transitions  []TransitionDef `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// PDA only.
	StackAlphabet      []string       `json:"stack_alphabet,omitempty" yaml:"stack_alphabet,omitempty" mapstructure:"stack_alphabet"`
	InitialStackSymbol string         `json:"initial_stack_symbol,omitempty" yaml:"initial_stack_symbol,omitempty" mapstructure:"initial_stack_symbol"`
	Acceptance         AcceptanceMode `json:"acceptance,omitempty" yaml:"acceptance,omitempty" mapstructure:"acceptance"`

	// Transducers only.
	OutputAlphabet []string          `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty" mapstructure:"output_alphabet"`
	StateOutputs   map[string]string `json:"state_outputs,omitempty" yaml:"state_outputs,omitempty" mapstructure:"state_outputs"`

	// RequireTotal turns a missing DFA transition into ErrNoTransition instead of a rejection.
	RequireTotal bool `json:"require_total,omitempty" yaml:"require_total,omitempty" mapstructure:"require_total"`
}

// TransitionDef is one transition of a Definition.
// Pop and Push are only read for PDA, Output only for Mealy.
type TransitionDef struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string   `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     string   `json:"to" yaml:"to" mapstructure:"to"`
	Output string   `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
	Pop    string   `json:"pop,omitempty" yaml:"pop,omitempty" mapstructure:"pop"`
	Push   []string `json:"push,omitempty" yaml:"push,omitempty" mapstructure:"push"`
}
