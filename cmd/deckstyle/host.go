package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"deckstyle/internal/config"
	"deckstyle/internal/remote"
)

func newHostCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "host DECK.md",
		Short: "Serve a deck over SSH for viewers to follow in their terminals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				if err := config.ApplyOverrides(map[string]any{config.KeyHostAddr: addr}); err != nil {
					return err
				}
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read deck: %w", err)
			}
			keyPath, err := config.HostKeyPath()
			if err != nil {
				return err
			}
			t, err := a.resolve("")
			if err != nil {
				return err
			}
			if err := a.registry.Register(t); err != nil {
				return err
			}

			host, err := remote.New(remote.Config{
				Address:     config.GetString(config.KeyHostAddr),
				HostKeyPath: keyPath,
				Deck:        filepath.Base(args[0]),
				Markdown:    string(data),
			}, a.registry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Hosting %s over SSH on %s\n", filepath.Base(args[0]), host.Address())
			return host.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "SSH listen address (default from config host.addr)")
	return cmd
}
