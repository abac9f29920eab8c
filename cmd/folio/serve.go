package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		staticDir, _ := cmd.Flags().GetString("static")
		app := folio.New(cfg, views.Funcs(), folio.WithStaticDir(staticDir))
		return app.Start()
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().String("addr", "", "listen address, overrides ADDR")
		c.Flags().String("static", "public", "directory served under /public/")
	}
	rootCmd.AddCommand(serveCmd)
}
