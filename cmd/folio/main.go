// Command folio serves a portfolio site and manages its database.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "folio",
	Short:        "A portfolio site with an admin dashboard",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("could not read .env file", slog.Any("error", err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// loadConfig reads the environment and installs the process logger at the
// configured level.
func loadConfig() (folio.SiteConfig, error) {
	cfg, err := folio.LoadConfig()
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	switch folio.EnvOr("LOG_FORMAT", "text") {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return cfg, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
