package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreGetString(t *testing.T) {
	s := NewStore("unused.cfg")

	if got := s.GetString("gameplay.primary.Jump", "Space", "Jump"); got != "Space" {
		t.Errorf("expected default Space, got %q", got)
	}
	if !s.Has("gameplay.primary.Jump") {
		t.Error("GetString should record the default")
	}

	s.SetString("gameplay.primary.Jump", "W")
	if got := s.GetString("gameplay.primary.Jump", "Space", ""); got != "W" {
		t.Errorf("expected W, got %q", got)
	}

	// explicit empty values are kept, not replaced by the default
	s.SetString("gameplay.secondary.Jump", "")
	if got := s.GetString("gameplay.secondary.Jump", "Up", ""); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "keybindings.cfg")

	s := NewStore(path)
	s.GetString("menu.primary.Back", "Escape", "Go back")
	s.GetString("gameplay.primary.Jump", "Space", "Jump")
	s.SetString("gameplay.secondary.Jump", "")
	s.SetString("gameplay.primary.Divide", "Keypad /")
	s.SetString("gameplay.primary.Hash", "#")
	s.SetString("gameplay.primary.Quote", "'")

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	if !strings.Contains(string(data), "# Go back") {
		t.Errorf("expected description comment in file:\n%s", data)
	}

	loaded, err := LoadStore(path)
	if err != nil {
		t.Fatalf("LoadStore failed: %v", err)
	}

	want := map[string]string{
		"menu.primary.Back":       "Escape",
		"gameplay.primary.Jump":   "Space",
		"gameplay.secondary.Jump": "",
		"gameplay.primary.Divide": "Keypad /",
		"gameplay.primary.Hash":   "#",
		"gameplay.primary.Quote":  "'",
	}
	if len(loaded.Keys()) != len(want) {
		t.Errorf("expected %d keys, got %v", len(want), loaded.Keys())
	}
	for k, v := range want {
		if !loaded.Has(k) {
			t.Errorf("missing key %s", k)
			continue
		}
		if got := loaded.GetString(k, "default", ""); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoadStoreMissing(t *testing.T) {
	s, err := LoadStore(filepath.Join(t.TempDir(), "missing.cfg"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("expected empty store, got %v", s.Keys())
	}
}

func TestLoadStoreInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not a mapping", "- a\n- b\n"},
		{"nested value", "gameplay:\n  primary: Space\n"},
		{"bad yaml", "key: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.cfg")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
			if _, err := LoadStore(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStoreKeysSorted(t *testing.T) {
	s := NewStore("")
	s.SetString("b", "1")
	s.SetString("a", "2")
	s.SetString("c", "3")

	keys := s.Keys()
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("expected sorted keys, got %v", keys)
	}

	s.Delete("b")
	if s.Has("b") {
		t.Error("Delete did not remove key")
	}
}
