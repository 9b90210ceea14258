package theme

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	apperrors "deckstyle/internal/errors"
)

// ErrUnknownTheme is returned when a requested theme is not registered.
var ErrUnknownTheme = apperrors.New(apperrors.CodeUnknownTheme, "unknown theme", nil)

// Registry holds named themes. Stored records are private copies and every
// read returns a fresh clone, so registered themes never change.
type Registry struct {
	mu          sync.RWMutex
	themes      map[string]Theme
	currentName string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{themes: make(map[string]Theme)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package functions.
func Default() *Registry {
	return defaultRegistry
}

// Register validates t and stores a copy under t.Name, replacing any theme
// of the same name. The first registered theme becomes current.
func (r *Registry) Register(t Theme) error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return apperrors.New(apperrors.CodeConfigurationError, "register theme: missing name", nil)
	}
	if err := Validate(t); err != nil {
		return fmt.Errorf("register theme %s: %w", name, err)
	}

	stored := t.Clone()
	stored.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[name] = stored
	if r.currentName == "" {
		r.currentName = name
	}
	return nil
}

// MustRegister is Register for init-time literals; it panics on error so a
// malformed built-in theme stops the program at startup.
func (r *Registry) MustRegister(t Theme) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns a clone of the named theme.
func (r *Registry) Get(name string) (Theme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	if !ok {
		return Theme{}, apperrors.New(apperrors.CodeUnknownTheme, "unknown theme: "+name, ErrUnknownTheme)
	}
	return t.Clone(), nil
}

// SetTheme switches the current theme.
func (r *Registry) SetTheme(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.themes[name]; !ok {
		return apperrors.New(apperrors.CodeUnknownTheme, "unknown theme: "+name, ErrUnknownTheme)
	}
	r.currentName = name
	return nil
}

// Current returns a clone of the current theme, or the zero Theme when the
// registry is empty.
func (r *Registry) Current() Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.themes[r.currentName].Clone()
}

// CurrentName returns the name of the current theme.
func (r *Registry) CurrentName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentName
}

// Available returns all registered theme names in sorted order.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.themes))
}

// CycleTheme switches to the next theme in sorted order, wrapping around,
// and returns its name.
func (r *Registry) CycleTheme() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := slices.Sorted(maps.Keys(r.themes))
	if len(names) == 0 {
		return ""
	}
	idx := slices.Index(names, r.currentName)
	r.currentName = names[(idx+1)%len(names)]
	return r.currentName
}

// Clone returns an independent registry holding the same themes and current
// selection. Switching themes in the clone does not affect r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &Registry{
		themes:      make(map[string]Theme, len(r.themes)),
		currentName: r.currentName,
	}
	for name, t := range r.themes {
		out.themes[name] = t.Clone()
	}
	return out
}

// Register adds t to the default registry.
func Register(t Theme) error { return defaultRegistry.Register(t) }

// MustRegister adds t to the default registry or panics.
func MustRegister(t Theme) { defaultRegistry.MustRegister(t) }

// Get returns a clone of a theme from the default registry.
func Get(name string) (Theme, error) { return defaultRegistry.Get(name) }

// SetTheme switches the default registry's current theme.
func SetTheme(name string) error { return defaultRegistry.SetTheme(name) }

// Current returns the default registry's current theme.
func Current() Theme { return defaultRegistry.Current() }

// CurrentName returns the default registry's current theme name.
func CurrentName() string { return defaultRegistry.CurrentName() }

// Available lists the default registry's theme names.
func Available() []string { return defaultRegistry.Available() }

// CycleTheme advances the default registry's current theme.
func CycleTheme() string { return defaultRegistry.CycleTheme() }
