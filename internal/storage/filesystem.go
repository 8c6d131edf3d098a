package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore persists generated illustrations onto the local filesystem.
// Files accumulate indefinitely; there is no cleanup of old images.
type ImageStore struct {
	basePath string
}

// NewImageStore initializes an ImageStore rooted at basePath, creating the
// directory if absent.
func NewImageStore(basePath string) (*ImageStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &ImageStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *ImageStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Write persists the provided bytes under the given filename and returns the
// filename back. Names containing path separators are rejected so callers
// cannot escape the image directory.
func (s *ImageStore) Write(ctx context.Context, filename string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateFilename(filename); err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filename)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return filename, nil
}

func validateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return errors.New("storage: filename is required")
	}
	if strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		return fmt.Errorf("storage: invalid filename %q", filename)
	}
	return nil
}
