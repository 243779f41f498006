package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage persists uploaded files under slash-separated relative paths.
type FileStorage interface {
	Save(ctx context.Context, relPath string, r io.Reader) error
	Remove(ctx context.Context, relPath string) error
}

// LocalFileStorage writes files below a root directory that is served
// under the public image path.
type LocalFileStorage struct {
	root string
}

var _ FileStorage = (*LocalFileStorage)(nil)

func NewLocalFileStorage(root string) *LocalFileStorage {
	return &LocalFileStorage{root: root}
}

func (s *LocalFileStorage) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid storage path %q", relPath)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalFileStorage) Save(ctx context.Context, relPath string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dstPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod upload: %w", err)
	}
	return os.Rename(tmp.Name(), dstPath)
}

func (s *LocalFileStorage) Remove(_ context.Context, relPath string) error {
	dstPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(dstPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
