package automata_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

// ExampleEngine_Compile compiles a regular expression down to its minimal DFA.
func ExampleEngine_Compile() {
	ctx := context.Background()
	eng := automata.New()

	p, err := eng.Compile(ctx, "a*b+")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("minimal states:", p.Minimal.Len())
	for _, input := range []string{"b", "aab", "ba"} {
		res, err := eng.SimulateString(ctx, p.Minimal, input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %v\n", input, res.Accepted)
	}
	// Output:
	// minimal states: 2
	// b: true
	// aab: true
	// ba: false
}

// ExampleRunner shows a headless replay of a Mealy machine run.
func ExampleRunner() {
	ctx := context.Background()
	eng := automata.New()

	edge, err := eng.Build(domain.Definition{
		Type:       domain.KindMealy,
		States:     []string{"s0", "s1"},
		Alphabet:   []string{"0", "1"},
		StartState: "s0",
		Transitions: []domain.TransitionDef{
			{From: "s0", Symbol: "0", To: "s0", Output: "0"},
			{From: "s0", Symbol: "1", To: "s1", Output: "1"},
			{From: "s1", Symbol: "0", To: "s0", Output: "1"},
			{From: "s1", Symbol: "1", To: "s1", Output: "0"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.SimulateString(ctx, edge, "01")
	if err != nil {
		log.Fatal(err)
	}

	runner := &automata.Runner{Output: os.Stdout, Headless: true}
	if err := runner.Run(edge, res); err != nil {
		log.Fatal(err)
	}
	// Output:
	// step 0 {s0} input=01
	// step 1 [0] {s0} input=1 output=0
	// step 2 [1] {s1} input=ε output=01
	// output: 01 (2 steps)
}
