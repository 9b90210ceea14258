// Package server serves theme records over HTTP: CSS and JSON renditions,
// the theme list, switching the current theme and a websocket that pushes
// switches to live previews.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"deckstyle/internal/debug"
	apperrors "deckstyle/internal/errors"
	"deckstyle/internal/render"
	"deckstyle/internal/theme"
	"deckstyle/internal/themefile"
)

// Message is pushed to live-preview clients when the current theme changes.
type Message struct {
	Type string `json:"type"`
	Name string `json:"name"`
	CSS  string `json:"css"`
}

// ThemeInfo describes one registered theme in the theme list.
type ThemeInfo struct {
	Name       string `json:"name"`
	Current    bool   `json:"current"`
	Background string `json:"background,omitempty"`
	Highlight  string `json:"highlight,omitempty"`
}

// Server exposes a theme registry over HTTP.
type Server struct {
	registry *theme.Registry
	hub      *Hub
	upgrader websocket.Upgrader
	scope    string
}

// Option configures a Server.
type Option func(*Server)

// WithScope sets the CSS selector rules are nested under.
func WithScope(scope string) Option {
	return func(s *Server) { s.scope = scope }
}

// New creates a server for registry.
func New(registry *theme.Registry, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		hub:      NewHub(),
		scope:    render.DefaultScope,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub returns the live-preview hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Register mounts the API routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/theme.css", s.handleCSS)
	mux.HandleFunc("GET /api/theme.json", s.handleJSON)
	mux.HandleFunc("GET /api/themes", s.handleThemes)
	mux.HandleFunc("POST /api/theme/current", s.handleSetCurrent)
	mux.HandleFunc("GET /api/theme/live", s.handleLive)
}

// Handler returns a mux with the API routes mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// SetCurrent switches the registry's current theme and pushes that theme to
// live clients. The pushed theme is the one named here, even if another
// switch lands in between.
func (s *Server) SetCurrent(name string) error {
	if err := s.registry.SetTheme(name); err != nil {
		return err
	}
	t, err := s.registry.Get(name)
	if err != nil {
		return err
	}
	n := s.hub.Broadcast(s.message(t))
	debug.Logf("server: current theme is now %s (%d live clients)", t.Name, n)
	return nil
}

func (s *Server) message(t theme.Theme) Message {
	return Message{Type: "theme", Name: t.Name, CSS: render.CSS(t, s.scope)}
}

// lookup resolves the theme query parameter, defaulting to the current theme.
func (s *Server) lookup(r *http.Request) (theme.Theme, error) {
	name := strings.TrimSpace(r.URL.Query().Get("theme"))
	if name == "" {
		return s.registry.Current(), nil
	}
	return s.registry.Get(name)
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	t, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(render.CSS(t, s.scope)))
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	t, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themefile.FromTheme(t))
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	current := s.registry.CurrentName()
	names := s.registry.Available()
	out := make([]ThemeInfo, 0, len(names))
	for _, name := range names {
		t, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		out = append(out, ThemeInfo{
			Name:       name,
			Current:    name == current,
			Background: t.Color(theme.RoleBackground),
			Highlight:  t.HighlightStyleName(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "name parameter required", http.StatusBadRequest)
		return
	}
	if err := s.SetCurrent(name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.message(s.registry.Current()))
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Logf("server: websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		s.hub.Leave(conn)
		_ = conn.Close()
	}()

	if err := s.hub.Join(conn, func() Message { return s.message(s.registry.Current()) }); err != nil {
		debug.Logf("server: live greeting failed: %v", err)
		return
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.CodeOf(err) {
	case apperrors.CodeUnknownTheme, apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(apperrors.CodeOf(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		debug.Logf("server: writeJSON error: %v", err)
	}
}
