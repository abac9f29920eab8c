package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := folio.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		slog.Info("schema is up to date", slog.Bool("postgres", cfg.Database.Postgres()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
