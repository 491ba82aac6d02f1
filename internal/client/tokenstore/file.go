package tokenstore

import (
	"context"       // Store contract
	"errors"        // Missing-file detection
	"fmt"           // Error wrapping
	"io/fs"         // fs.ErrNotExist
	"os"            // File I/O
	"path/filepath" // Parent directory
	"strings"       // Trim stray newlines
)

// FileStore keeps the token in a file readable only by the current user.
type FileStore struct {
	path string // Token file location
}

// NewFileStore returns a store backed by the file at path; nothing is created until Set
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Set replaces the token atomically: write a temp file, then rename it.
func (s *FileStore) Set(_ context.Context, token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil { // Owner-only directory
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+Key+"-*") // Same dir so rename stays on one filesystem
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op after a successful rename

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod token file: %w", err)
	}
	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Get reads the token; a missing file means no token
func (s *FileStore) Get(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil // Never logged in
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil // Tolerate hand-edited files
}

// Delete removes the token file if present
func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) { // Already gone is fine
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
