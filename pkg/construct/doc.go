/*
Package construct implements the conversions between equivalent automata.

	regex --Thompson--> ε-NFA --RemoveEpsilon--> NFA --Determinize--> DFA --Minimize--> minimal DFA
	Mealy <--MealyToMoore / MooreToMealy--> Moore

Every function returns a new automaton and leaves its input untouched.
State sets are represented with github.com/bits-and-blooms/bitset.
*/
package construct
