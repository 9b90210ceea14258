package remote

import (
	"path/filepath"
	"testing"
	"time"

	"deckstyle/internal/theme"
)

func TestNewValidatesConfig(t *testing.T) {
	r := theme.NewRegistry()
	if _, err := New(Config{HostKeyPath: "key"}, r); err == nil {
		t.Fatal("expected error without address")
	}
	if _, err := New(Config{Address: "127.0.0.1:0"}, r); err == nil {
		t.Fatal("expected error without host key path")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	r := theme.NewRegistry()
	r.MustRegister(theme.Theme{Name: "plain"})

	h, err := New(Config{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_ed25519"),
		Deck:        "talk.md",
		Markdown:    "# Hi",
	}, r)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if h.Address() != "127.0.0.1:0" {
		t.Errorf("Address() = %q", h.Address())
	}
	if h.cfg.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", h.cfg.IdleTimeout, DefaultIdleTimeout)
	}

	custom, err := New(Config{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_ed25519"),
		IdleTimeout: time.Minute,
	}, r)
	if err != nil {
		t.Fatal(err)
	}
	if custom.cfg.IdleTimeout != time.Minute {
		t.Errorf("IdleTimeout = %v", custom.cfg.IdleTimeout)
	}
}
