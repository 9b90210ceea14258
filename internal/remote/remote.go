// Package remote hosts the presenter over SSH so an audience can follow a
// deck from their own terminals. Every session gets its own copy of the
// theme registry and its own position in the deck.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"deckstyle/internal/debug"
	"deckstyle/internal/presenter"
	"deckstyle/internal/theme"
)

// DefaultIdleTimeout disconnects sessions with no input for this long.
const DefaultIdleTimeout = 30 * time.Minute

// Config describes a hosted deck.
type Config struct {
	Address     string
	HostKeyPath string
	IdleTimeout time.Duration
	Deck        string
	Markdown    string
}

// Host serves one deck over SSH.
type Host struct {
	cfg      Config
	registry *theme.Registry
	server   *ssh.Server
}

// New builds an SSH host for the deck in cfg. The registry is copied per
// session, so viewers can cycle themes independently.
func New(cfg Config, registry *theme.Registry) (*Host, error) {
	if cfg.Address == "" {
		return nil, errors.New("remote: listen address required")
	}
	if cfg.HostKeyPath == "" {
		return nil, errors.New("remote: host key path required")
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	h := &Host{cfg: cfg, registry: registry}
	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bm.Middleware(h.session),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	h.server = srv
	return h, nil
}

// Address returns the listen address.
func (h *Host) Address() string {
	return h.server.Addr
}

// Run serves until ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.server.Shutdown(shutdownCtx)
	}()

	debug.Logf("remote: serving %s on %s", h.cfg.Deck, h.cfg.Address)
	err := h.server.ListenAndServe()
	if err == nil || errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// session builds the presenter for one SSH session.
func (h *Host) session(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	debug.Logf("remote: session from %s as %s", s.RemoteAddr(), s.User())
	m := presenter.New(h.cfg.Deck, h.cfg.Markdown, h.registry.Clone(),
		presenter.WithRenderer(bm.MakeRenderer(s)))
	if pty, _, ok := s.Pty(); ok {
		m.Update(tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height})
	}
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}
