package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Migrate the schema, create the admin account and seed default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("email"); v != "" {
			cfg.AdminEmail = v
		}
		if v, _ := cmd.Flags().GetString("password"); v != "" {
			cfg.AdminPassword = v
		}
		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			return errors.New("an admin email and password are required (--email/--password or ADMIN_EMAIL/ADMIN_PASSWORD)")
		}

		store, err := folio.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		created, err := store.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			slog.Info("admin account created", slog.String("email", cfg.AdminEmail))
		} else {
			slog.Info("admin account already exists", slog.String("email", cfg.AdminEmail))
		}

		added, err := store.SeedSettings(ctx, folio.DefaultSettings())
		if err != nil {
			return err
		}
		slog.Info("default settings seeded", slog.Int("added", added))
		return nil
	},
}

func init() {
	initCmd.Flags().String("email", "", "admin email, overrides ADMIN_EMAIL")
	initCmd.Flags().String("password", "", "admin password, overrides ADMIN_PASSWORD")
	rootCmd.AddCommand(initCmd)
}
