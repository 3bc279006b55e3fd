package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Build, convert and simulate finite automata, PDAs and transducers",
	Long: `automata compiles regular expressions into automata, converts between
ε-NFA, NFA, DFA, Mealy and Moore machines, minimizes DFAs and simulates every kind,
including pushdown automata.

Definitions are JSON, YAML or text files, or names from the catalog directory (--dir).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Catalog directory used to resolve definitions by name")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every construction stage and run")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().Int("step-limit", 0, "Bound on PDA configurations explored per run (0 = default)")
	rootCmd.PersistentFlags().String("acceptance", "", "Override PDA acceptance: final_state or empty_stack")
}

func options(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	var opts cli.Options
	opts.Dir, _ = flags.GetString("dir")
	opts.Debug, _ = flags.GetBool("debug")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.LogFormat, _ = flags.GetString("log-format")
	opts.StepLimit, _ = flags.GetInt("step-limit")
	opts.Acceptance, _ = flags.GetString("acceptance")
	opts.Stderr = cmd.ErrOrStderr()
	return opts
}

// setup builds the logger and engine shared by most commands.
func setup(cmd *cobra.Command) (*automata.Engine, *slog.Logger, error) {
	opts := options(cmd)
	logger, err := cli.NewLogger(opts)
	if err != nil {
		return nil, nil, err
	}
	eng, err := cli.NewEngine(opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return eng, logger, nil
}
