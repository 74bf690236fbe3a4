package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads/"

// DiskStore implements port.DocumentStore on a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string { return s.dir }

// Save writes content to fileName and returns its public reference. Names
// that would escape the directory are rejected.
func (s *DiskStore) Save(ctx context.Context, fileName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !safeName(fileName) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	path := filepath.Join(s.dir, fileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fileName, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", fileName, err)
	}
	return PublicPrefix + fileName, nil
}

// Remove deletes the file behind ref. A file that is already gone is not an
// error.
func (s *DiskStore) Remove(_ context.Context, ref string) error {
	name, ok := strings.CutPrefix(ref, PublicPrefix)
	if !ok || !safeName(name) {
		return fmt.Errorf("invalid reference %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func safeName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}
