// Package cli implements the shelf command-line tool, a small consuming
// application over the shelf package.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/interfect/sqliteshelf/internal/config"
	"github.com/interfect/sqliteshelf/internal/platform/logger"
	"github.com/interfect/sqliteshelf/shelf"
)

var (
	flagDB         string
	flagTable      string
	flagDurability string

	log *slog.Logger
	reg *shelf.Registry
	sh  *shelf.Shelf

	rootCmd = &cobra.Command{
		Use:   "shelf",
		Short: "persistent key-value shelves backed by SQLite",
		Long: `shelf stores string keys and opaque values in named tables of a
SQLite database file. Several shelves may share one file; keys enumerate
in ascending order.`,
		SilenceUsage:      true,
		PersistentPreRunE: openShelf,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeShelf()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "backing database file (default $SHELF_DB or shelf.db)")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "table name (default $SHELF_TABLE or shelf)")
	rootCmd.PersistentFlags().StringVar(&flagDurability, "durability", "", "eager or lazy (default $SHELF_DURABILITY or eager)")

	rootCmd.AddCommand(setCmd, getCmd, delCmd, hasCmd, keysCmd, lenCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openShelf wires config, logging and the shelf itself before any
// subcommand runs. Flags override environment configuration.
func openShelf(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flagDB != "" {
		cfg.Shelf.Path = flagDB
	}
	if flagTable != "" {
		cfg.Shelf.Table = flagTable
	}
	if flagDurability != "" {
		cfg.Shelf.Durability = flagDurability
	}

	durability, err := shelf.ParseDurability(cfg.Shelf.Durability)
	if err != nil {
		return err
	}

	log = logger.New(logger.Options{
		Env:          cfg.Env,
		ConsoleLevel: cfg.Log.ConsoleLevel,
		FileLevel:    cfg.Log.FileLevel,
		File:         cfg.Log.File,
		App:          "shelf",
	})

	reg = shelf.NewRegistry(shelf.WithLogger(log))
	sh, err = reg.Open(cmd.Context(), shelf.Options{
		Path:       cfg.Shelf.Path,
		Table:      cfg.Shelf.Table,
		Durability: durability,
	})
	if err != nil {
		_ = reg.Close()
		return err
	}
	return nil
}

func closeShelf() error {
	var firstErr error
	if sh != nil {
		firstErr = sh.Close()
	}
	if reg != nil {
		if err := reg.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if log != nil {
		_ = logger.Close(log)
	}
	return firstErr
}
