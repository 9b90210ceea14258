package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"deckstyle/internal/config"
	"deckstyle/internal/render"
	"deckstyle/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		scope string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve theme CSS and live theme switching over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				if err := config.ApplyOverrides(map[string]any{config.KeyServeAddr: addr}); err != nil {
					return err
				}
			}
			listen := config.GetString(config.KeyServeAddr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.registry, server.WithScope(scope))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving themes on http://%s/api/themes (current: %s)\n", listen, a.registry.CurrentName())
			return srv.ListenAndServe(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config serve.addr)")
	cmd.Flags().StringVar(&scope, "scope", render.DefaultScope, "CSS selector theme rules are nested under")
	return cmd
}
