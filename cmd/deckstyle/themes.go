package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"deckstyle/internal/config"
	"deckstyle/internal/render"
	"deckstyle/internal/theme"
	"deckstyle/internal/themefile"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := a.registry.CurrentName()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tNAME\tBACKGROUND\tHIGHLIGHT\tLANGUAGES")
			for _, name := range a.registry.Available() {
				t, err := a.registry.Get(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, name,
					dash(t.Color(theme.RoleBackground)),
					dash(t.HighlightStyleName()),
					dash(strings.Join(t.Languages(), ",")))
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [theme]",
		Short: "Describe a theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolve(firstArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", t.Name)
			fmt.Fprintf(out, "Font:       %s\n", dash(t.Font.CSS()))
			fmt.Fprintf(out, "Highlight:  %s\n", dash(t.HighlightStyleName()))
			fmt.Fprintf(out, "Languages:  %s\n", dash(strings.Join(t.Languages(), ", ")))
			if len(t.Colors) > 0 {
				fmt.Fprintln(out, "Colors:")
				for _, role := range slices.Sorted(maps.Keys(t.Colors)) {
					fmt.Fprintf(out, "  %-12s %s\n", role, t.Colors[role])
				}
			}
			if len(t.Elements) > 0 {
				fmt.Fprintln(out, "Elements:")
				for _, el := range theme.KnownElements {
					s := t.Element(el)
					if s.IsZero() {
						continue
					}
					fmt.Fprintf(out, "  %-6s %s\n", el, describeElement(s))
				}
			}
			return nil
		},
	}
}

func describeElement(s theme.ElementStyle) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("fontSize", s.FontSize)
	add("fontFamily", s.FontFamily)
	add("fontWeight", s.FontWeight)
	add("fontStyle", s.FontStyle)
	add("lineHeight", s.LineHeight)
	add("textAlign", s.TextAlign)
	add("color", s.Color)
	add("background", s.Background)
	return strings.Join(parts, " ")
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check theme files without registering them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed []error
			for _, path := range args {
				t, err := themefile.Load(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n", path)
					for _, line := range strings.Split(err.Error(), "\n") {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", line)
					}
					failed = append(failed, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%s)\n", path, t.Name)
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d theme files invalid: %w", len(failed), len(args), errors.Join(failed...))
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format          string
		output          string
		scope           string
		copyToClipboard bool
	)
	cmd := &cobra.Command{
		Use:   "export [theme]",
		Short: "Write a theme as yaml, toml, json or css",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolve(firstArg(args))
			if err != nil {
				return err
			}

			var data []byte
			if strings.EqualFold(format, "css") {
				data = []byte(render.CSS(t, scope))
			} else {
				f, err := themefile.ParseFormat(format)
				if err != nil {
					return err
				}
				if data, err = themefile.Export(t, f); err != nil {
					return err
				}
			}

			switch {
			case copyToClipboard:
				if err := clipboardWrite(string(data)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s theme %s to clipboard\n", format, t.Name)
			case output != "":
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			default:
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, toml, json or css")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&scope, "scope", render.DefaultScope, "CSS selector for css output")
	cmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy to the system clipboard")
	return cmd
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use THEME",
		Short: "Make a theme the default and save it to config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.registry.SetTheme(name); err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(a.registry.Available(), ", "))
			}
			if err := config.SaveTheme(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using theme %s\n", name)
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
