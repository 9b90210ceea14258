package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deckstyle/internal/config"
	"deckstyle/internal/debug"
	apperrors "deckstyle/internal/errors"
	"deckstyle/internal/highlight"
	"deckstyle/internal/theme"
	"deckstyle/internal/themefile"
)

// app carries what every subcommand needs.
type app struct {
	registry *theme.Registry
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"theme":      config.KeyTheme,
	"themes-dir": config.KeyThemesDir,
	"highlight":  config.KeyHighlightStyle,
	"debug":      config.KeyDebug,
}

func newRootCmd(registry *theme.Registry) *cobra.Command {
	a := &app{registry: registry}

	root := &cobra.Command{
		Use:           "deckstyle",
		Short:         "Manage and preview slideshow themes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.String("theme", "", "Theme to use (default from config, else "+config.DefaultTheme+")")
	flags.String("themes-dir", "", "Directory of user theme files")
	flags.String("highlight", "", "Override the chroma highlight style")
	flags.Bool("debug", false, "Write a debug log to ~/.deckstyle/debug.log")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newValidateCmd(),
		newExportCmd(a),
		newUseCmd(a),
		newPreviewCmd(a),
		newServeCmd(a),
		newHostCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, user themes and the selected theme.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	overrides := map[string]any{}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return err
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("enable debug log: %w", err)
	}

	dir, err := config.ThemesDir()
	if err != nil {
		return err
	}
	names, err := themefile.RegisterDir(a.registry, dir)
	if err != nil {
		return fmt.Errorf("load user themes: %w", err)
	}
	debug.Logf("cli: user themes from %s: %v", dir, names)

	if name := strings.TrimSpace(config.GetString(config.KeyTheme)); name != "" {
		if err := a.registry.SetTheme(name); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(a.registry.Available(), ", "))
		}
	}
	return nil
}

// resolve returns the named theme, or the current one when name is empty,
// with any configured highlight override merged on top.
func (a *app) resolve(name string) (theme.Theme, error) {
	var (
		t   theme.Theme
		err error
	)
	if strings.TrimSpace(name) == "" {
		t = a.registry.Current()
		if t.Name == "" {
			return theme.Theme{}, apperrors.New(apperrors.CodeUnknownTheme, "no themes registered", nil)
		}
	} else if t, err = a.registry.Get(name); err != nil {
		return theme.Theme{}, err
	}

	style := config.GetString(config.KeyHighlightStyle)
	languages := config.GetStringSlice(config.KeyHighlightLanguages)
	if strings.TrimSpace(style) == "" && len(languages) == 0 {
		return t, nil
	}
	frag, err := highlight.Fragment(style, languages...)
	if err != nil {
		return theme.Theme{}, err
	}
	return theme.Merge(t, frag), nil
}
