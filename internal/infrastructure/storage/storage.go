package storage

import (
	"fmt"
	"strings"

	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// Config selects and configures the CV storage backend.
type Config struct {
	Type      string // local or s3
	BasePath  string // local directory
	BaseURL   string // public URL prefix of stored files
	Bucket    string
	Region    string
	Endpoint  string // custom S3-compatible endpoint
	AccessKey string
	SecretKey string
}

// New builds the backend named by cfg.Type.
func New(cfg Config) (ports.CVStorage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// publicURL joins the base URL and an object name.
func publicURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(name, "/")
}

// objectName strips the base URL from a path returned by Save.
func objectName(baseURL, path string) string {
	prefix := strings.TrimRight(baseURL, "/") + "/"
	return strings.TrimPrefix(path, prefix)
}
