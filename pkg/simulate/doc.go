/*
Package simulate executes automata over an input sequence.

Finite machines (DFA, NFA, ε-NFA, Mealy, Moore) advance one symbol at a time through
the pure Advance function, so every snapshot of a run is an independent Configuration.
Pushdown automata are searched breadth-first over (state, position, stack)
configurations with a visited set and an explicit step bound, which guarantees
termination even when ε-moves keep growing the stack.

	eng := simulate.New(simulate.WithStepLimit(5000))
	res, err := eng.Run(ctx, a, simulate.Tokenize(a, "aab"))
*/
package simulate
