package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the catalog directory (--dir)",
}

var catalogListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the definitions of the catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		if opts.Dir == "" {
			opts.Dir = "."
		}
		loader, err := loam.Open(opts.Dir)
		if err != nil {
			return err
		}
		names, err := loader.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			def, err := loader.Get(cmd.Context(), name)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(invalid: %v)\n", name, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d states\n", name, def.Type, len(def.States))
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print a catalog definition in another format",
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
		format, _ := cmd.Flags().GetString("format")
		return cli.WriteDefinition(a, format, "")
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogExportCmd)
	catalogExportCmd.Flags().StringP("format", "f", "yaml", "Definition format: json, yaml or text")
}
