// Package render adapts theme records to concrete renderers: glamour style
// configs for the terminal, lipgloss frames and CSS for the browser.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"deckstyle/internal/theme"
)

// StyleConfig maps t onto a glamour style config. It starts from glamour's
// dark config, or the light one when the theme background is light.
// Font families, sizes, line heights and alignment have no terminal
// equivalent and are ignored.
func StyleConfig(t theme.Theme) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if isLight(t.Color(theme.RoleBackground)) {
		cfg = styles.LightStyleConfig
	}

	if c := termColor(t.Color(theme.RoleText)); c != nil {
		cfg.Document.Color = c
		cfg.Text.Color = c
	}
	if c := termColor(t.Color(theme.RoleBackground)); c != nil {
		cfg.Document.BackgroundColor = c
	}
	if c := termColor(t.Color(theme.RolePrimary)); c != nil {
		cfg.Heading.Color = c
	}
	if c := termColor(t.Color(theme.RoleLink)); c != nil {
		cfg.Link.Color = c
		cfg.LinkText.Color = c
	}
	if c := termColor(t.Color(theme.RoleHighlight)); c != nil {
		cfg.Code.BackgroundColor = c
	}
	if c := termColor(t.Color(theme.RoleMuted)); c != nil {
		cfg.BlockQuote.Color = c
		cfg.HorizontalRule.Color = c
	}

	headings := []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6}
	for i, h := range theme.Headings {
		applyPrimitive(&headings[i].StylePrimitive, t.Element(h))
	}
	applyPrimitive(&cfg.Paragraph.StylePrimitive, t.Element(theme.ElementP))
	applyPrimitive(&cfg.Text, t.Element(theme.ElementSpan))
	applyPrimitive(&cfg.Code.StylePrimitive, t.Element(theme.ElementCode))
	applyPrimitive(&cfg.CodeBlock.StylePrimitive, t.Element(theme.ElementPre))

	if name := t.HighlightStyleName(); name != "" {
		cfg.CodeBlock.Theme = name
		cfg.CodeBlock.Chroma = nil
	}
	return cfg
}

func applyPrimitive(p *ansi.StylePrimitive, s theme.ElementStyle) {
	if c := termColor(s.Color); c != nil {
		p.Color = c
	}
	if c := termColor(s.Background); c != nil {
		p.BackgroundColor = c
	}
	if bold, ok := weightIsBold(s.FontWeight); ok {
		p.Bold = &bold
	}
	switch strings.ToLower(strings.TrimSpace(s.FontStyle)) {
	case "italic", "oblique":
		p.Italic = boolPtr(true)
	case "normal":
		p.Italic = boolPtr(false)
	}
}

// weightIsBold maps a CSS font weight onto terminal bold. Numeric weights
// of 600 and above are bold.
func weightIsBold(weight string) (bold, ok bool) {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "":
		return false, false
	case "bold", "bolder":
		return true, true
	case "normal", "lighter":
		return false, true
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return false, false
	}
	return n >= 600, true
}

// termColor converts a theme color to the hex form glamour and lipgloss
// accept. Keywords and unparseable values yield nil.
func termColor(s string) *string {
	if s == "" {
		return nil
	}
	c, ok, err := theme.ParseColor(s)
	if err != nil || !ok {
		return nil
	}
	hex := c.Hex()
	return &hex
}

func isLight(background string) bool {
	_, ok, err := theme.ParseColor(background)
	return err == nil && ok && !theme.IsDark(background)
}

func boolPtr(b bool) *bool { return &b }

// Frame returns the lipgloss style a slide is drawn in: theme background
// and text colors, padded.
func Frame(t theme.Theme) lipgloss.Style {
	return FrameFor(lipgloss.DefaultRenderer(), t)
}

// FrameFor is Frame for a specific lipgloss renderer, such as one bound to
// a remote session.
func FrameFor(r *lipgloss.Renderer, t theme.Theme) lipgloss.Style {
	style := r.NewStyle().Padding(1, 2)
	if c := termColor(t.Color(theme.RoleBackground)); c != nil {
		style = style.Background(lipgloss.Color(*c))
	}
	if c := termColor(t.Color(theme.RoleText)); c != nil {
		style = style.Foreground(lipgloss.Color(*c))
	}
	return style
}

// Accent returns a bold style in the theme's primary color, falling back to
// the link color.
func Accent(t theme.Theme) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	for _, role := range []theme.Role{theme.RolePrimary, theme.RoleLink} {
		if c := termColor(t.Color(role)); c != nil {
			return style.Foreground(lipgloss.Color(*c))
		}
	}
	return style
}

// Muted returns the style used for secondary text such as footers.
func Muted(t theme.Theme) lipgloss.Style {
	return MutedFor(lipgloss.DefaultRenderer(), t)
}

// MutedFor is Muted for a specific lipgloss renderer.
func MutedFor(r *lipgloss.Renderer, t theme.Theme) lipgloss.Style {
	if c := termColor(t.Color(theme.RoleMuted)); c != nil {
		return r.NewStyle().Foreground(lipgloss.Color(*c))
	}
	return r.NewStyle().Faint(true)
}
