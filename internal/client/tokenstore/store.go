// Package tokenstore persists the client's single bearer token.
//
// Every medium exposes the same Set/Get/Delete contract and keeps the token
// under the fixed key Key. Get returns an empty string when nothing is stored
// and Delete of a missing token is not an error.
package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Key is the name the token is stored under in every medium.
const Key = "token"

// Supported storage media.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Store persists exactly one token.
type Store interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// Open returns the store for kind. An empty path selects the default
// location under the user's config directory.
func Open(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile, "":
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, Key)
		}
		return NewFileStore(path), nil
	case KindSQLite:
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "client.db")
		}
		return OpenSQLiteStore(ctx, path)
	}
	return nil, fmt.Errorf("unknown token store %q", kind)
}

// DefaultDir is the per-user directory holding client state.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "paytrack"), nil
}
