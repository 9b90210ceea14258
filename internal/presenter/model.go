// Package presenter is the terminal slideshow: a bubbletea model that shows
// one slide at a time in the current theme.
package presenter

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"deckstyle/internal/debug"
	"deckstyle/internal/render"
	"deckstyle/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	footerHeight  = 1
)

// PositionStore persists where a deck was left off.
type PositionStore interface {
	SaveSlide(ctx context.Context, deck string, index int) error
	SaveTheme(ctx context.Context, deck, themeName string) error
}

// savedMsg reports the outcome of a background save.
type savedMsg struct{ err error }

// Model is the presenter's bubbletea model.
type Model struct {
	deck     string
	slides   []string
	index    int
	registry *theme.Registry
	store    PositionStore
	profile  termenv.Profile
	styles   *lipgloss.Renderer

	keys     KeyMap
	help     help.Model
	showHelp bool
	viewport viewport.Model
	renderer *render.Renderer

	width  int
	height int
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithStore persists slide and theme changes.
func WithStore(s PositionStore) Option {
	return func(m *Model) { m.store = s }
}

// WithStartSlide opens the deck at index, clamped to the slide range.
func WithStartSlide(index int) Option {
	return func(m *Model) { m.index = index }
}

// WithProfile fixes the color profile used for rendering.
func WithProfile(p termenv.Profile) Option {
	return func(m *Model) { m.profile = p }
}

// WithRenderer draws the frame and footer with r and renders markdown in
// r's color profile. Remote sessions pass a renderer bound to the session.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.styles = r
		m.profile = r.ColorProfile()
	}
}

// New creates a presenter for the deck markdown. The registry's current
// theme styles the slides; cycling themes advances it.
func New(deck, markdown string, registry *theme.Registry, opts ...Option) *Model {
	slides := render.SplitSlides(markdown)
	if len(slides) == 0 {
		slides = []string{""}
	}
	m := &Model{
		deck:     deck,
		slides:   slides,
		registry: registry,
		profile:  termenv.EnvColorProfile(),
		styles:   lipgloss.DefaultRenderer(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.index = clamp(m.index, 0, len(m.slides)-1)
	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.resize()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case savedMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.goTo(m.index + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.goTo(m.index - 1)
		case key.Matches(msg, m.keys.First):
			return m, m.goTo(0)
		case key.Matches(msg, m.keys.Last):
			return m, m.goTo(len(m.slides) - 1)
		case key.Matches(msg, m.keys.Theme):
			return m, m.cycleTheme()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	t := m.renderer.Theme()
	body := render.FrameFor(m.styles, t).
		Width(m.width).
		Height(m.bodyHeight()).
		Render(m.viewport.View())

	parts := []string{body, m.footer(t)}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Index returns the current slide index.
func (m *Model) Index() int {
	return m.index
}

// Slides returns the number of slides.
func (m *Model) Slides() int {
	return len(m.slides)
}

// ThemeName returns the theme slides are rendered in.
func (m *Model) ThemeName() string {
	return m.renderer.Theme().Name
}

func (m *Model) goTo(index int) tea.Cmd {
	index = clamp(index, 0, len(m.slides)-1)
	if index == m.index {
		return nil
	}
	m.index = index
	m.refresh()
	return m.save(func(ctx context.Context, s PositionStore) error {
		return s.SaveSlide(ctx, m.deck, index)
	})
}

func (m *Model) cycleTheme() tea.Cmd {
	name := m.registry.CycleTheme()
	m.rebuild()
	debug.Logf("presenter: theme -> %s", name)
	return m.save(func(ctx context.Context, s PositionStore) error {
		return s.SaveTheme(ctx, m.deck, name)
	})
}

func (m *Model) save(fn func(context.Context, PositionStore) error) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		return savedMsg{err: fn(context.Background(), store)}
	}
}

// resize fits the viewport inside the slide frame and re-renders.
func (m *Model) resize() {
	frame := render.FrameFor(m.styles, m.registry.Current())
	m.viewport.Width = max(m.width-frame.GetHorizontalFrameSize(), 1)
	m.viewport.Height = max(m.bodyHeight()-frame.GetVerticalFrameSize(), 1)
	m.rebuild()
}

// rebuild recreates the renderer for the current theme and size.
func (m *Model) rebuild() {
	t := m.registry.Current()
	m.renderer = render.NewRenderer(t, max(m.viewport.Width, 10), render.WithProfile(m.profile))
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderer.Render(m.slides[m.index]))
	m.viewport.GotoTop()
}

func (m *Model) bodyHeight() int {
	h := m.height - footerHeight
	if m.showHelp {
		h -= lipgloss.Height(m.help.View(m.keys))
	}
	return max(h, 1)
}

func (m *Model) footer(t theme.Theme) string {
	text := fmt.Sprintf(" %s  %d/%d  %s", m.deck, m.index+1, len(m.slides), t.Name)
	if m.err != nil {
		text += "  save failed: " + m.err.Error()
	}
	return render.MutedFor(m.styles, t).Render(truncate.StringWithTail(text, uint(max(m.width, 0)), "…"))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Run starts the presenter on the terminal's alternate screen.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
