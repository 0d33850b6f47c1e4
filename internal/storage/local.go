package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorage keeps objects under basePath/<bucket>/<path>.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/files"
	}

	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  cfg.BaseURL,
	}, nil
}

// Root is the directory served under the public base URL.
func (s *LocalStorage) Root() string {
	return s.basePath
}

func (s *LocalStorage) fullPath(bucket, path string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == ".." {
		return "", ErrInvalidPath
	}
	key, err := cleanKey(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, bucket, filepath.FromSlash(key)), nil
}

func (s *LocalStorage) Save(ctx context.Context, bucket, path string, reader io.Reader, size int64, contentType string) error {
	fullPath, err := s.fullPath(bucket, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Get(ctx context.Context, bucket, path string) (io.ReadCloser, error) {
	fullPath, err := s.fullPath(bucket, path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, bucket, path string) error {
	fullPath, err := s.fullPath(bucket, path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) DeletePrefix(ctx context.Context, bucket, prefix string) (int, error) {
	objects, err := s.List(ctx, bucket, prefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, obj := range objects {
		if err := s.Delete(ctx, bucket, obj.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *LocalStorage) Exists(ctx context.Context, bucket, path string) (bool, error) {
	fullPath, err := s.fullPath(bucket, path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) List(ctx context.Context, bucket, prefix string) ([]Object, error) {
	root, err := s.fullPath(bucket, "_")
	if err != nil {
		return nil, err
	}
	root = filepath.Dir(root)

	var objects []Object
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{
			Bucket:       bucket,
			Path:         key,
			Size:         info.Size(),
			ContentType:  mime.TypeByExtension(filepath.Ext(key)),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

func (s *LocalStorage) GetURL(bucket, path string) string {
	return joinURL(s.baseURL, bucket, path)
}

func (s *LocalStorage) EnsureBucket(ctx context.Context, bucket string) error {
	dir, err := s.fullPath(bucket, "_")
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(dir), 0755)
}
