package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid flowchart or a Graphviz DOT graph of the automaton.
With --input, the states and transitions of the last step of the run are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := cli.Resolve(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}

		var overlay *domain.Overlay
		if input, _ := cmd.Flags().GetString("input"); cmd.Flags().Changed("input") {
			res, err := eng.SimulateString(cmd.Context(), a, input)
			if res == nil {
				return err
			}
			stepper := simulate.NewStepper(res)
			for stepper.Next() {
			}
			overlay = stepper.Overlay()
		}

		view := a.Graph(overlay)
		switch format, _ := cmd.Flags().GetString("format"); format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.Mermaid(view))
		case "dot":
			fmt.Fprint(cmd.OutOrStdout(), graph.DOT(view))
		default:
			return fmt.Errorf("unknown graph format %q (mermaid, dot)", format)
		}
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table <definition>",
	Short: "Print the transition table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := cli.Resolve(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}
		return tui.TransitionTable(cmd.OutOrStdout(), a)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd, tableCmd)
	graphCmd.Flags().String("format", "mermaid", "Graph format: mermaid or dot")
	graphCmd.Flags().StringP("input", "i", "", "Highlight the final configuration of a run on this input")
}
