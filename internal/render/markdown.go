package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"deckstyle/internal/debug"
	"deckstyle/internal/theme"
)

// Renderer renders slide markdown for the terminal in a theme's style.
type Renderer struct {
	theme   theme.Theme
	width   int
	profile termenv.Profile
	term    *glamour.TermRenderer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile overrides the terminal color profile detected from the
// environment.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) { r.profile = p }
}

// NewRenderer builds a glamour renderer for t. If glamour cannot be set up
// the renderer falls back to plain word wrapping.
func NewRenderer(t theme.Theme, width int, opts ...Option) *Renderer {
	r := &Renderer{
		theme:   t.Clone(),
		width:   width,
		profile: termenv.EnvColorProfile(),
	}
	for _, opt := range opts {
		opt(r)
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithStyles(StyleConfig(r.theme)),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(r.profile),
		glamour.WithChromaFormatter(ChromaFormatter(r.profile)),
	)
	if err != nil {
		debug.Logf("render: glamour unavailable for %s: %v", t.Name, err)
		return r
	}
	r.term = term
	return r
}

// Theme returns the theme the renderer was built for.
func (r *Renderer) Theme() theme.Theme {
	return r.theme.Clone()
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render renders markdown. Fenced code in languages the theme does not
// register is rendered without highlighting.
func (r *Renderer) Render(markdown string) string {
	input := RestrictFences(markdown, r.theme)
	if r.term == nil {
		return r.fallback(input)
	}
	out, err := r.term.Render(input)
	if err != nil {
		debug.Logf("render: glamour render failed: %v", err)
		return r.fallback(input)
	}
	return strings.TrimSpace(out)
}

// Plain renders markdown and strips every escape sequence.
func (r *Renderer) Plain(markdown string) string {
	return ansi.Strip(r.Render(markdown))
}

func (r *Renderer) fallback(input string) string {
	if r.width <= 0 {
		return input
	}
	return wordwrap.String(input, r.width)
}

// ChromaFormatter picks the chroma terminal formatter for a color profile.
func ChromaFormatter(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

// RestrictFences removes the language tag from fenced code blocks whose
// language is not registered in t, so only registered grammars highlight.
// A theme with no grammars leaves markdown untouched.
func RestrictFences(markdown string, t theme.Theme) string {
	if len(t.CodeLanguages) == 0 {
		return markdown
	}
	lines := strings.Split(markdown, "\n")
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) && strings.TrimLeft(trimmed, fence[:1]) == "" {
				fence = ""
			}
			continue
		}
		marker := fenceMarker(trimmed)
		if marker == "" {
			continue
		}
		fence = marker
		lang := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		if fields := strings.Fields(lang); len(fields) > 0 {
			lang = fields[0]
		}
		if lang != "" && !registered(t, lang) {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[i] = indent + marker
		}
	}
	return strings.Join(lines, "\n")
}

func registered(t theme.Theme, lang string) bool {
	key := strings.ToLower(lang)
	if _, ok := t.Lexer(key); ok {
		return true
	}
	l := lexers.Get(key)
	if l == nil {
		return false
	}
	name := l.Config().Name
	for _, registered := range t.CodeLanguages {
		if registered != nil && registered.Config().Name == name {
			return true
		}
	}
	return false
}

// fenceMarker returns the opening run of backticks or tildes, or "".
func fenceMarker(line string) string {
	for _, ch := range []string{"`", "~"} {
		n := 0
		for n < len(line) && line[n:n+1] == ch {
			n++
		}
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}
