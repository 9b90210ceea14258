package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"deckstyle/internal/config"
	"deckstyle/internal/debug"
	"deckstyle/internal/presenter"
	"deckstyle/internal/render"
	"deckstyle/internal/state"
)

type previewOptions struct {
	width   int
	print   bool
	plain   bool
	restart bool
	noState bool
}

func newPreviewCmd(a *app) *cobra.Command {
	var opts previewOptions
	cmd := &cobra.Command{
		Use:   "preview DECK.md",
		Short: "Present a markdown deck in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("width") {
				if err := config.ApplyOverrides(map[string]any{config.KeyRenderWidth: opts.width}); err != nil {
					return err
				}
			}
			return a.preview(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVarP(&opts.width, "width", "w", config.DefaultRenderWidth, "Word-wrap width for --print")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Render every slide to stdout instead of presenting")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "With --print, strip colors and styling")
	cmd.Flags().BoolVar(&opts.restart, "restart", false, "Start at the first slide instead of where you left off")
	cmd.Flags().BoolVar(&opts.noState, "no-state", false, "Do not read or save the presenter position")
	return cmd
}

func (a *app) preview(cmd *cobra.Command, path string, opts previewOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deck: %w", err)
	}

	t, err := a.resolve("")
	if err != nil {
		return err
	}

	if opts.print {
		width := config.GetInt(config.KeyRenderWidth)
		if width <= 0 {
			width = config.DefaultRenderWidth
		}
		r := render.NewRenderer(t, width)
		out := cmd.OutOrStdout()
		for i, slide := range render.SplitSlides(string(data)) {
			if i > 0 {
				fmt.Fprintln(out, strings.Repeat("─", width))
			}
			if opts.plain {
				fmt.Fprintln(out, r.Plain(slide))
			} else {
				fmt.Fprintln(out, r.Render(slide))
			}
		}
		return nil
	}

	// Merged highlight overrides replace the registered theme for this run.
	if err := a.registry.Register(t); err != nil {
		return err
	}
	if err := a.registry.SetTheme(t.Name); err != nil {
		return err
	}

	deck, err := filepath.Abs(path)
	if err != nil {
		deck = path
	}
	var pOpts []presenter.Option
	if !opts.noState {
		store, err := a.openState(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()
		pOpts = append(pOpts, presenter.WithStore(store))
		if pos, ok, err := store.Position(cmd.Context(), deck); err == nil && ok {
			if !opts.restart {
				pOpts = append(pOpts, presenter.WithStartSlide(pos.Slide))
			}
			if pos.Theme != "" && !cmd.Flags().Changed("theme") {
				if err := a.registry.SetTheme(pos.Theme); err != nil {
					debug.Logf("preview: saved theme %q unavailable: %v", pos.Theme, err)
				}
			}
		}
	}

	return presenter.Run(presenter.New(filepath.Base(path), string(data), a.registry, pOpts...))
}

func (a *app) openState(ctx context.Context) (*state.Store, error) {
	path, err := config.StatePath()
	if err != nil {
		return nil, err
	}
	return state.Open(ctx, path)
}
