package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var regexCmd = &cobra.Command{
	Use:   "regex <pattern>",
	Short: "Compile a regular expression into a minimal DFA",
	Long: `Runs the pattern through Thompson construction, ε-removal, subset construction
and minimization, then prints the selected stage.

Operators: | (union), * (star), + (one or more), parentheses; \e or ε for the empty string.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		p, err := eng.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		stage, _ := cmd.Flags().GetString("stage")
		var a *domain.Automaton
		switch stage {
		case "enfa":
			a = p.ENFA
		case "nfa":
			a = p.NFA
		case "dfa":
			a = p.DFA
		case "minimal":
			a = p.Minimal
		default:
			return fmt.Errorf("unknown stage %q (enfa, nfa, dfa, minimal)", stage)
		}

		out := cmd.OutOrStdout()
		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			fmt.Fprintf(out, "ast: %s\n", p.AST)
			for _, s := range p.Stages() {
				fmt.Fprintf(out, "%-5s %d states, %d transitions\n", s.Kind(), s.Len(), len(s.Transitions()))
			}
			return nil
		}

		if input, _ := cmd.Flags().GetString("input"); cmd.Flags().Changed("input") {
			return cli.Simulate(cmd.Context(), eng, a, input, cli.SimulateOptions{Output: cli.OutputSummary, Stdout: out})
		}

		switch view, _ := cmd.Flags().GetString("view"); view {
		case "table":
			return tui.TransitionTable(out, a)
		case "mermaid":
			fmt.Fprint(out, graph.Mermaid(a.Graph(nil)))
			return nil
		case "dot":
			fmt.Fprint(out, graph.DOT(a.Graph(nil)))
			return nil
		default:
			format, _ := cmd.Flags().GetString("format")
			path, _ := cmd.Flags().GetString("out")
			return cli.WriteDefinition(a, format, path)
		}
	},
}

func init() {
	rootCmd.AddCommand(regexCmd)
	regexCmd.Flags().String("stage", "minimal", "Pipeline stage to print: enfa, nfa, dfa or minimal")
	regexCmd.Flags().String("view", "definition", "Output view: definition, table, mermaid or dot")
	regexCmd.Flags().StringP("format", "f", "json", "Definition format: json, yaml or text")
	regexCmd.Flags().StringP("out", "o", "", "Write the definition to a file instead of stdout")
	regexCmd.Flags().StringP("input", "i", "", "Simulate the selected stage on this input instead of printing it")
	regexCmd.Flags().Bool("stats", false, "Print the size of every stage")
}
