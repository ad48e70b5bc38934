package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/dailycontents/internal/errors"
)

// Store receives exported documents.
type Store interface {
	// Put writes body under key, a slash-separated relative path.
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// Location describes where key ends up, for logs and CLI output.
	Location(key string) string
}

// DirStore writes documents below a local directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a store for it.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		return nil, errors.New("E203")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E201").WithDetail("Cannot create " + dir).Wrap(err)
	}
	return &DirStore{dir: dir}, nil
}

// Put implements Store.
func (s *DirStore) Put(ctx context.Context, key string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("E201").WithDetail("Cannot create " + filepath.Dir(path)).Wrap(err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return errors.New("E201").WithDetail("Cannot write " + path).Wrap(err)
	}
	return nil
}

// Location implements Store.
func (s *DirStore) Location(key string) string {
	path, err := s.path(key)
	if err != nil {
		return key
	}
	return path
}

// path resolves key below the store directory, rejecting keys that escape it.
func (s *DirStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("E201").WithDetail("Invalid export key " + key)
	}
	return filepath.Join(s.dir, clean), nil
}
