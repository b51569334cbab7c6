package storage

import (
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

var hexName = regexp.MustCompile(`^video_[0-9a-f]{32}\.mp4$`)

func TestNewName_Format(t *testing.T) {
	s := New(t.TempDir())

	name := s.NewName("video_", ".mp4")
	if !hexName.MatchString(name) {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestNewName_Unique(t *testing.T) {
	s := New(t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		name := s.NewName("", ".mp3")
		if seen[name] {
			t.Fatalf("duplicate name %q after %d calls", name, i)
		}
		seen[name] = true
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "static")
	s := New(root)

	for i := 0; i < 2; i++ {
		if err := s.EnsureDir(); err != nil {
			t.Fatalf("EnsureDir call %d: %v", i+1, err)
		}
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s: %v", root, err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"missing file", filepath.Join(dir, "missing.mp3"), false},
		{"directory", dir, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestEnsurePlaceholder(t *testing.T) {
	s := New(t.TempDir())
	path := s.DefaultImage()

	written, err := EnsurePlaceholder(path, 64, 36)
	if err != nil {
		t.Fatalf("EnsurePlaceholder: %v", err)
	}
	if !written {
		t.Fatal("expected placeholder to be written")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode placeholder: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 36 {
		t.Errorf("size = %dx%d, want 64x36", cfg.Width, cfg.Height)
	}

	written, err = EnsurePlaceholder(path, 64, 36)
	if err != nil {
		t.Fatalf("second EnsurePlaceholder: %v", err)
	}
	if written {
		t.Error("existing image must not be overwritten")
	}
}
