package domain

// StateID indexes the state table of an Automaton. IDs are dense, starting at 0.
type StateID int

// NoState is returned by lookups that found nothing.
const NoState StateID = -1

// State is one entry of the state table.
type State struct {
	ID        StateID
	Name      string
	Accepting bool

	// Output is only meaningful for Moore machines.
	Output string
}
