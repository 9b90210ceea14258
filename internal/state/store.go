// Package state persists presenter positions per deck in a local SQLite
// database.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	deck       TEXT PRIMARY KEY,
	slide      INTEGER NOT NULL DEFAULT 0,
	theme      TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
)`

// timeLayout is fixed width so updated_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Position is the saved presenter state for one deck.
type Position struct {
	Deck      string
	Slide     int
	Theme     string
	UpdatedAt time.Time
}

// Store reads and writes positions. It holds a single connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("state: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply state schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Position returns the saved state for deck and whether one exists.
func (s *Store) Position(ctx context.Context, deck string) (Position, bool, error) {
	var (
		p       = Position{Deck: deck}
		updated string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT slide, theme, updated_at FROM positions WHERE deck = ?`, deck,
	).Scan(&p.Slide, &p.Theme, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{Deck: deck}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("query position for %s: %w", deck, err)
	}
	if t, err := time.Parse(timeLayout, updated); err == nil {
		p.UpdatedAt = t
	}
	return p, true, nil
}

// LastSlide returns the last saved slide index for deck, or 0.
func (s *Store) LastSlide(ctx context.Context, deck string) (int, error) {
	p, _, err := s.Position(ctx, deck)
	return p.Slide, err
}

// SaveSlide records the current slide index for deck.
func (s *Store) SaveSlide(ctx context.Context, deck string, index int) error {
	if index < 0 {
		return fmt.Errorf("save slide for %s: negative index %d", deck, index)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (deck, slide, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(deck) DO UPDATE SET slide = excluded.slide, updated_at = excluded.updated_at
	`, deck, index, s.stamp())
	if err != nil {
		return fmt.Errorf("save slide for %s: %w", deck, err)
	}
	return nil
}

// SaveTheme records the theme last used to present deck.
func (s *Store) SaveTheme(ctx context.Context, deck, themeName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (deck, theme, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(deck) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at
	`, deck, themeName, s.stamp())
	if err != nil {
		return fmt.Errorf("save theme for %s: %w", deck, err)
	}
	return nil
}

// Positions lists every saved deck, most recently updated first.
func (s *Store) Positions(ctx context.Context) ([]Position, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT deck, slide, theme, updated_at
		FROM positions
		ORDER BY updated_at DESC, deck
	`)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Position
	for rows.Next() {
		var (
			p       Position
			updated string
		)
		if err := rows.Scan(&p.Deck, &p.Slide, &p.Theme, &updated); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		if t, err := time.Parse(timeLayout, updated); err == nil {
			p.UpdatedAt = t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(timeLayout)
}
