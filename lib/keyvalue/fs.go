package keyvalue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FS stores every key as a flat file inside a single directory.
type FS struct {
	dir string
}

// NewFS creates the backing directory if it does not exist yet and fails
// if it cannot be created.
func NewFS(dir string) (FS, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return FS{}, fmt.Errorf("initialize store directory %q: %w", dir, err)
	}
	return FS{dir: dir}, nil
}

func (s FS) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s FS) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %q: %w", key, err)
	}
	return value, true, nil
}

func (s FS) Set(ctx context.Context, key string, value []byte) error {
	err := os.WriteFile(s.path(key), value, 0o600)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
