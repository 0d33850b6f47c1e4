package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidPath    = errors.New("invalid object path")
)

// Storage is a bucketed object store. Paths are slash separated keys inside a bucket.
type Storage interface {
	// Save stores size bytes from reader at bucket/path
	Save(ctx context.Context, bucket, path string, reader io.Reader, size int64, contentType string) error

	Get(ctx context.Context, bucket, path string) (io.ReadCloser, error)

	// Delete is a no-op for a missing object
	Delete(ctx context.Context, bucket, path string) error

	// DeletePrefix removes every object under prefix and returns how many were removed
	DeletePrefix(ctx context.Context, bucket, prefix string) (int, error)

	Exists(ctx context.Context, bucket, path string) (bool, error)

	// List returns the objects under prefix, recursively
	List(ctx context.Context, bucket, prefix string) ([]Object, error)

	// GetURL returns the unsigned public URL of an object
	GetURL(bucket, path string) string

	// EnsureBucket creates the bucket if it is missing and makes its objects publicly readable
	EnsureBucket(ctx context.Context, bucket string) error
}

// Object describes a stored object.
type Object struct {
	Bucket       string    `json:"bucket"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Config holds storage configuration
type Config struct {
	Type      string // local, minio
	BasePath  string // local root directory
	BaseURL   string // public URL prefix; buckets are appended to it
	Endpoint  string // minio host:port
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewStorage creates a storage backend based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "minio", "s3":
		return NewMinioStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// joinURL builds base/bucket/path without doubling slashes.
func joinURL(base, bucket, path string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// cleanKey rejects keys that could leave the bucket.
func cleanKey(path string) (string, error) {
	key := strings.TrimLeft(path, "/")
	if key == "" {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." {
			return "", ErrInvalidPath
		}
	}
	return key, nil
}
