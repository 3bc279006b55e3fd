/*
Package dsl provides a fluent Go API for declaring automata in code.

It is the programmatic counterpart of the JSON, YAML and text definition formats: useful in
tests, in generators and anywhere a definition is computed rather than written by hand.
States are kept in declaration order and the input alphabet is inferred from the transitions
unless it is declared explicitly.

Example usage:

	b := dsl.New(domain.KindDFA).Name("ends-in-one")

	b.State("q0").Start().
		On("0", "q0").
		On("1", "q1")

	b.State("q1").Accept().
		On("0", "q0").
		On("1", "q1")

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
*/
package dsl
