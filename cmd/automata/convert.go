package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <definition> <target>",
	Short: "Convert an automaton to another kind",
	Long: `Supported conversions: ENFA -> NFA, NFA/ENFA -> DFA, MEALY <-> MOORE,
and the widening DFA -> NFA -> ENFA.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := setup(cmd)
		if err != nil {
			return err
		}
		target, err := domain.ParseKind(args[1])
		if err != nil {
			return err
		}
		a, err := cli.Resolve(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}
		out, err := eng.Convert(cmd.Context(), a, target)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		path, _ := cmd.Flags().GetString("out")
		return cli.WriteDefinition(out, format, path)
	},
}

var minimizeCmd = &cobra.Command{
	Use:   "minimize <definition>",
	Short: "Minimize a DFA (NFAs are determinized first)",
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
		out, err := eng.Minimize(cmd.Context(), a)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		path, _ := cmd.Flags().GetString("out")
		return cli.WriteDefinition(out, format, path)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd, minimizeCmd)
	for _, c := range []*cobra.Command{convertCmd, minimizeCmd} {
		c.Flags().StringP("format", "f", "json", "Definition format: json, yaml or text")
		c.Flags().StringP("out", "o", "", "Write the result to a file instead of stdout")
	}
}
