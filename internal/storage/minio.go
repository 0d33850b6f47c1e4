package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage talks to any S3 compatible server.
type MinioStorage struct {
	client  *minio.Client
	baseURL string
	region  string
}

func NewMinioStorage(cfg Config) (*MinioStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for minio storage")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" || baseURL[0] == '/' {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &MinioStorage{
		client:  client,
		baseURL: baseURL,
		region:  cfg.Region,
	}, nil
}

func (s *MinioStorage) Save(ctx context.Context, bucket, path string, reader io.Reader, size int64, contentType string) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

func (s *MinioStorage) Get(ctx context.Context, bucket, path string) (io.ReadCloser, error) {
	if _, err := s.client.StatObject(ctx, bucket, path, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	obj, err := s.client.GetObject(ctx, bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func (s *MinioStorage) Delete(ctx context.Context, bucket, path string) error {
	err := s.client.RemoveObject(ctx, bucket, path, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinioStorage) DeletePrefix(ctx context.Context, bucket, prefix string) (int, error) {
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

func (s *MinioStorage) Exists(ctx context.Context, bucket, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) List(ctx context.Context, bucket, prefix string) ([]Object, error) {
	var objects []Object
	for info := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", info.Err)
		}
		objects = append(objects, Object{
			Bucket:       bucket,
			Path:         info.Key,
			Size:         info.Size,
			ContentType:  info.ContentType,
			LastModified: info.LastModified,
		})
	}
	return objects, nil
}

func (s *MinioStorage) GetURL(bucket, path string) string {
	return joinURL(s.baseURL, bucket, path)
}

// EnsureBucket creates the bucket if it is missing and opens it for anonymous reads,
// so GetURL links load in a browser.
func (s *MinioStorage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	policy, err := publicReadPolicy(bucket)
	if err != nil {
		return err
	}
	if err := s.client.SetBucketPolicy(ctx, bucket, policy); err != nil {
		return fmt.Errorf("failed to set policy on bucket %s: %w", bucket, err)
	}
	return nil
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// publicReadPolicy grants anonymous s3:GetObject on every object in the bucket.
func publicReadPolicy(bucket string) (string, error) {
	policy := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: map[string][]string{"AWS": {"*"}},
			Action:    []string{"s3:GetObject"},
			Resource:  []string{"arn:aws:s3:::" + bucket + "/*"},
		}},
	}

	data, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("failed to encode bucket policy: %w", err)
	}
	return string(data), nil
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
