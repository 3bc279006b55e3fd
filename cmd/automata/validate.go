package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>...",
	Short: "Check definitions for consistency",
	Long: `Loads every definition and reports malformed ones: unknown states or symbols,
nondeterminism in deterministic kinds, missing outputs. Well-formed definitions are
then linted for unreachable and dead states, unused symbols and partial transition functions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		failed := 0
		for _, ref := range args {
			a, err := cli.Resolve(cmd.Context(), eng, ref)
			if err != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", ref, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "✓ %s: %s with %d states\n", ref, a.Kind(), a.Len())
			for _, f := range validator.Lint(a) {
				fmt.Fprintf(out, "  %s\n", f)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d definition(s) invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
