package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <definition> [input]",
	Short: "Run an automaton over an input",
	Long: `Loads a definition file (or catalog name) and runs it over the input.
Acceptors report accept/reject, transducers print their output, and the full
configuration trace is shown. Use --step to walk the trace interactively.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := cli.Resolve(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}

		var input string
		if len(args) > 1 {
			input = args[1]
		}
		opts := cli.SimulateOptions{Stdin: os.Stdin, Stdout: cmd.OutOrStdout()}
		opts.Step, _ = cmd.Flags().GetBool("step")
		opts.Output, _ = cmd.Flags().GetString("output")
		if cmd.Flags().Changed("tokens") {
			tokens, _ := cmd.Flags().GetString("tokens")
			opts.Tokens = cli.SplitTokens(tokens)
		}
		return cli.Simulate(cmd.Context(), eng, a, input, opts)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Bool("step", false, "Step through the trace interactively (n, p, r, q)")
	simulateCmd.Flags().String("output", cli.OutputReport, "Output style: report, summary or json")
	simulateCmd.Flags().String("tokens", "", "Comma separated input symbols, for multi-character symbols")
}
