package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the JSON API described by /openapi.yaml (Swagger UI on /swagger) and
Prometheus metrics on /metrics. The catalog lives in memory, seeded from --dir and
reloaded on change, or in Redis with --redis-addr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		if opts.LogLevel == "warn" && !cmd.Flags().Changed("log-level") {
			opts.LogLevel = "info"
		}
		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}

		var sopts cli.ServeOptions
		port, _ := cmd.Flags().GetString("port")
		sopts.Addr = ":" + port
		sopts.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
		sopts.RedisPassword = os.Getenv("AUTOMATA_REDIS_PASSWORD")
		sopts.RedisDB, _ = cmd.Flags().GetInt("redis-db")
		sopts.RedisTTL, _ = cmd.Flags().GetDuration("redis-ttl")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := cli.NewServer(ctx, opts, sopts, logger)
		if err != nil {
			return err
		}
		return srv.Run(ctx, 0)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Store the catalog in Redis at this address (password from AUTOMATA_REDIS_PASSWORD)")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expire stored definitions after this long (0 = never)")
}
