package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const defaultLocalBaseURL = "/uploads"

// LocalStorage keeps CVs on the local filesystem. Files are served by the
// HTTP layer under BaseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultLocalBaseURL
	}

	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &LocalStorage{basePath: cfg.BasePath, baseURL: cfg.BaseURL}, nil
}

// BasePath is the directory files are written to.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// Save writes content to basePath/name and returns its public path.
func (s *LocalStorage) Save(ctx context.Context, name string, content io.Reader, _ string) (string, error) {
	fullPath, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(file, content); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return publicURL(s.baseURL, name), nil
}

// Delete removes a file previously returned by Save. Missing files are ignored.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(objectName(s.baseURL, path))
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// resolve maps a name to a path inside basePath, rejecting traversal.
func (s *LocalStorage) resolve(name string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." || clean != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.basePath, clean), nil
}
