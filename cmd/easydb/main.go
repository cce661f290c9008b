// Package main contains the cli implementation of the easydb server.
// It uses cobra for cli argument handling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Pieczasz/easydb/internal/config"
	"github.com/Pieczasz/easydb/internal/schema"
	"github.com/Pieczasz/easydb/internal/server"
)

type runFlags struct {
	verbose    bool
	configPath string
}

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "easydb PORT [FILE] [HOST]",
		Short: "In-memory schema-bound record store",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, flags)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "g", false, "trace each request to standard error")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "optional TOML config file overlaying host/port/schema_file/verbose/max_connections")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "easydb:", err)
		os.Exit(1)
	}
}

func run(args []string, flags *runFlags) error {
	cfg, err := config.LoadOptional(flags.configPath)
	if err != nil {
		return err
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid PORT %q: %w", args[0], err)
	}
	cfg.Port = port

	if len(args) > 1 {
		cfg.SchemaFile = args[1]
	}
	if len(args) > 2 {
		cfg.Host = args[2]
	}
	if flags.verbose {
		cfg.Verbose = true
	}

	tables, err := schema.NewParser().ParseFile(cfg.SchemaFile)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	srv := server.New(tables, cfg.MaxConnections, cfg.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return srv.Run(ctx, cfg.Host, cfg.Port)
}
