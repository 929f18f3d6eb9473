package testutil

import (
	"context"
	_ "embed"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/wp4bd/internal/fixture"
	"github.com/roach88/wp4bd/internal/store"
)

//go:embed fixtures/site.yaml
var siteYAML []byte

// Site returns the canonical test fixture:
//
//   - published articles 1-3, draft article 4, pages 5 and 6
//   - accounts admin (1), writer (2, editor), guest (3)
//   - terms Go (tags), Site News (categories), Widgets (custom_vocab)
//   - system.core, system.date and wp4bd.options configuration
//
// Each call returns a fresh copy.
func Site(t testing.TB) *fixture.Fixture {
	t.Helper()
	f, err := fixture.Parse(siteYAML)
	if err != nil {
		t.Fatalf("parse site fixture: %v", err)
	}
	return f
}

// SiteYAML returns the raw canonical fixture.
func SiteYAML() []byte {
	out := make([]byte, len(siteYAML))
	copy(out, siteYAML)
	return out
}

// NewStore opens an empty store in a temp directory. It is closed when
// the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewSiteStore opens a store seeded with the canonical fixture.
func NewSiteStore(t testing.TB) *store.Store {
	t.Helper()
	s := NewStore(t)
	if _, err := Site(t).Apply(context.Background(), s); err != nil {
		t.Fatalf("seed site fixture: %v", err)
	}
	return s
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
