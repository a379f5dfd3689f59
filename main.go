package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pokedex/config"
	"pokedex/database"
	"pokedex/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "pokedex",
		Short:         "Pokédex backend: catalog proxy, favorites, teams and recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	load := func() (*config.Config, zerolog.Logger, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return nil, zerolog.Nop(), err
		}
		return cfg, logger.New(cfg.Log.Level, cfg.Log.Pretty), nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, log)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo user if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			created, err := database.Seed(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "demo user %s created\n", database.DemoEmail)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "demo user %s already exists\n", database.DemoEmail)
			}
			return nil
		},
	}

	root.AddCommand(serve, seed)
	// running the binary without a subcommand starts the server
	root.RunE = serve.RunE

	return root
}
