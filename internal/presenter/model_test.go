package presenter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"deckstyle/internal/theme"
)

const deck = "# One\n\nfirst\n---\n# Two\n\nsecond\n---\n# Three\n\nthird"

type fakeStore struct {
	mu     sync.Mutex
	slides []int
	themes []string
	err    error
}

func (f *fakeStore) SaveSlide(_ context.Context, _ string, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slides = append(f.slides, index)
	return f.err
}

func (f *fakeStore) SaveTheme(_ context.Context, _ string, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.themes = append(f.themes, name)
	return f.err
}

func testRegistry(t *testing.T) *theme.Registry {
	t.Helper()
	r := theme.NewRegistry()
	r.MustRegister(theme.Theme{Name: "dark", Colors: theme.Colors{theme.RoleBackground: "#265F69"}})
	r.MustRegister(theme.Theme{Name: "light", Colors: theme.Colors{theme.RoleBackground: "#ffffff"}})
	return r
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the returned command, feeding its message back.
func press(t *testing.T, m *Model, s string) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(keyMsg(s))
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, ok := msg.(savedMsg); ok {
				m.Update(msg)
			}
		}
	}
	return cmd
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	cases := []struct {
		msg     tea.KeyMsg
		binding key.Binding
		name    string
	}{
		{keyMsg("right"), km.Next, "right arrow -> Next"},
		{keyMsg("l"), km.Next, "l -> Next"},
		{keyMsg("left"), km.Prev, "left arrow -> Prev"},
		{keyMsg("g"), km.First, "g -> First"},
		{keyMsg("G"), km.Last, "G -> Last"},
		{keyMsg("t"), km.Theme, "t -> Theme"},
		{keyMsg("?"), km.Help, "? -> Help"},
		{keyMsg("q"), km.Quit, "q -> Quit"},
	}
	for _, tc := range cases {
		if !key.Matches(tc.msg, tc.binding) {
			t.Errorf("expected %s", tc.name)
		}
	}
	if len(km.FullHelp()) != 2 || len(km.ShortHelp()) == 0 {
		t.Errorf("unexpected help layout")
	}
}

func TestNavigation(t *testing.T) {
	store := &fakeStore{}
	m := New("talk.md", deck, testRegistry(t), WithStore(store), WithProfile(termenv.Ascii))
	if m.Slides() != 3 {
		t.Fatalf("Slides() = %d, want 3", m.Slides())
	}

	press(t, m, "right")
	press(t, m, "l")
	if m.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", m.Index())
	}
	if cmd := press(t, m, "right"); cmd != nil {
		t.Fatalf("moving past the last slide should be a no-op")
	}
	press(t, m, "g")
	if m.Index() != 0 {
		t.Fatalf("Index() after first = %d", m.Index())
	}
	press(t, m, "end")
	press(t, m, "left")
	if m.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", m.Index())
	}

	want := []int{1, 2, 0, 2, 1}
	if len(store.slides) != len(want) {
		t.Fatalf("saved slides = %v, want %v", store.slides, want)
	}
	for i := range want {
		if store.slides[i] != want[i] {
			t.Fatalf("saved slides = %v, want %v", store.slides, want)
		}
	}
}

func TestStartSlideClamped(t *testing.T) {
	m := New("talk.md", deck, testRegistry(t), WithStartSlide(42), WithProfile(termenv.Ascii))
	if m.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", m.Index())
	}
	empty := New("empty.md", "", testRegistry(t), WithProfile(termenv.Ascii))
	if empty.Slides() != 1 || empty.Index() != 0 {
		t.Fatalf("empty deck should have one blank slide")
	}
}

func TestCycleTheme(t *testing.T) {
	store := &fakeStore{}
	r := testRegistry(t)
	m := New("talk.md", deck, r, WithStore(store), WithProfile(termenv.Ascii))
	if m.ThemeName() != "dark" {
		t.Fatalf("ThemeName() = %q", m.ThemeName())
	}

	press(t, m, "t")
	if m.ThemeName() != "light" || r.CurrentName() != "light" {
		t.Fatalf("ThemeName() = %q, registry %q", m.ThemeName(), r.CurrentName())
	}
	press(t, m, "t")
	if m.ThemeName() != "dark" {
		t.Fatalf("cycling should wrap, got %q", m.ThemeName())
	}
	if strings.Join(store.themes, ",") != "light,dark" {
		t.Fatalf("saved themes = %v", store.themes)
	}
}

func TestSaveErrorShownInFooter(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := New("talk.md", deck, testRegistry(t), WithStore(store), WithProfile(termenv.Ascii))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	press(t, m, "right")

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "save failed: disk full") {
		t.Fatalf("footer should report the save error:\n%s", view)
	}
}

func TestView(t *testing.T) {
	m := New("talk.md", deck, testRegistry(t), WithProfile(termenv.Ascii))
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 16})

	view := ansi.Strip(m.View())
	for _, want := range []string{"One", "first", "talk.md  1/3  dark"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "second") {
		t.Errorf("view should only show the current slide")
	}

	press(t, m, "?")
	if !strings.Contains(ansi.Strip(m.View()), "cycle theme") {
		t.Errorf("help should list bindings")
	}
}

func TestQuit(t *testing.T) {
	m := New("talk.md", deck, testRegistry(t), WithProfile(termenv.Ascii))
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
