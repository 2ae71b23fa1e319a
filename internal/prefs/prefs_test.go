package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", p.PageSize, defaultPageSize)
	}
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"Nord\"\npage_size = 33\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := Load(path)
	if p.Theme != "Nord" {
		t.Fatalf("Theme = %q, want Nord", p.Theme)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want default for disallowed value", p.PageSize)
	}
}

func TestLoad_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("{not toml"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme || p.PageSize != defaultPageSize {
		t.Fatalf("Load of malformed file = %+v, want defaults", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{Theme: "Nord", PageSize: 100}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
