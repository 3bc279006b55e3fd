/*
Package automata builds, converts and simulates finite automata, pushdown automata
and finite-state transducers.

Automata are immutable values (see pkg/domain) created from a Definition, from a
definition file, or from a regular expression. Every construction produces a new
automaton, so the stages of a pipeline can be inspected side by side.

# Key Features

  - Regex compilation: parse, Thompson ε-NFA, ε-removal, subset construction, minimization.
  - Mealy and Moore machines with output-preserving conversion between them.
  - PDA simulation with a bounded breadth-first search and both acceptance modes.
  - Step-by-step traces with graph overlays for visualization (Mermaid, DOT).

# Usage

	eng := automata.New(automata.WithLogger(logger))

	p, err := eng.Compile(ctx, "a*b+")
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.SimulateString(ctx, p.Minimal, "aab")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Accepted) // true
*/
package automata
