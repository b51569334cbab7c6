// Package storage owns the shared directory where generated audio and video
// artifacts live. The root is injected from configuration.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultImageName is the well-known still image used when a caller supplies none.
const DefaultImageName = "default_image.png"

// Store resolves artifact names under a single root directory.
type Store struct {
	root string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: filepath.Clean(dir)}
}

// Root returns the storage root.
func (s *Store) Root() string {
	return s.root
}

// EnsureDir creates the root directory if needed. Safe to call repeatedly.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", s.root, err)
	}
	return nil
}

// NewName returns prefix + 32 hex characters of a random 128-bit id + ext.
func (s *Store) NewName(prefix, ext string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + id + ext
}

// Path joins name onto the storage root.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// DefaultImage returns the path of the default still image.
func (s *Store) DefaultImage() string {
	return s.Path(DefaultImageName)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
