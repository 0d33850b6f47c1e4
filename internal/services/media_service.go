package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"creatorhub_backend/internal/imageprocessor"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/metrics"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

// MediaConfig describes the buckets and upload limits.
type MediaConfig struct {
	PostsBucket   string
	AvatarsBucket string
	MaxSize       int64
	AllowedTypes  []string
}

type MediaService interface {
	// Upload stores a post media file in the caller's folder of the posts bucket
	Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.MediaObjectDTO, error)
	// UploadAvatar shrinks and stores a profile picture in the avatars bucket
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.MediaObjectDTO, error)
	ListLibrary(ctx context.Context, userID string) (*dto.MediaLibraryResponse, error)
	PublicURL(bucket, path string) string
	// OwnsURL reports whether the URL points into the caller's posts folder
	OwnsURL(userID, url string) bool
	// Remove deletes an object previously returned by Upload or UploadAvatar
	Remove(ctx context.Context, object *dto.MediaObjectDTO)
	DeleteUserMedia(ctx context.Context, userID string) error
}

type mediaService struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
	config    MediaConfig
	now       Clock
}

func NewMediaService(store storage.Storage, processor *imageprocessor.Processor, cfg MediaConfig) MediaService {
	if cfg.PostsBucket == "" {
		cfg.PostsBucket = "posts"
	}
	if cfg.AvatarsBucket == "" {
		cfg.AvatarsBucket = "avatars"
	}
	return &mediaService{
		storage:   store,
		processor: processor,
		config:    cfg,
		now:       time.Now,
	}
}

// UserFolder is the per-user prefix inside every bucket.
func UserFolder(userID string) string {
	return "user-" + userID + "/"
}

// ObjectPath builds user-<id>/<unix millis>.<ext>.
func ObjectPath(userID string, at time.Time, ext string) string {
	return fmt.Sprintf("%s%d.%s", UserFolder(userID), at.UnixMilli(), ext)
}

// fileExtension prefers the uploaded filename, then the sniffed type.
func fileExtension(filename string, mt *mimetype.MIME) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" && mt != nil {
		ext = strings.TrimPrefix(mt.Extension(), ".")
	}
	if ext == "" {
		ext = "bin"
	}
	return ext
}

func (s *mediaService) isAllowed(mt *mimetype.MIME) bool {
	if len(s.config.AllowedTypes) == 0 {
		return true
	}
	for m := mt; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), s.config.AllowedTypes...) {
			return true
		}
	}
	return false
}

// readUpload checks the size limit, reads the file and sniffs its type.
func (s *mediaService) readUpload(file *multipart.FileHeader) ([]byte, *mimetype.MIME, error) {
	if file == nil {
		return nil, nil, apperrors.ErrNoMediaSelected
	}
	if s.config.MaxSize > 0 && file.Size > s.config.MaxSize {
		return nil, nil, apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"max_size": s.config.MaxSize})
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, apperrors.InternalError(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	reader := io.Reader(src)
	if s.config.MaxSize > 0 {
		reader = io.LimitReader(src, s.config.MaxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, apperrors.InternalError(fmt.Errorf("read upload: %w", err))
	}
	if s.config.MaxSize > 0 && int64(len(data)) > s.config.MaxSize {
		return nil, nil, apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"max_size": s.config.MaxSize})
	}

	mt := mimetype.Detect(data)
	if !s.isAllowed(mt) {
		return nil, nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"detected": mt.String()})
	}
	return data, mt, nil
}

func (s *mediaService) store(ctx context.Context, bucket, path string, data []byte, contentType string) (*dto.MediaObjectDTO, error) {
	err := s.storage.Save(ctx, bucket, path, bytes.NewReader(data), int64(len(data)), contentType)
	metrics.RecordUpload(bucket, int64(len(data)), err)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to store upload", err, "bucket", bucket, "path", path)
		return nil, apperrors.ErrExternal(err, "media", "Upload failed")
	}

	url := s.storage.GetURL(bucket, path)
	logger.CtxInfo(ctx, "Media stored", "bucket", bucket, "path", path, "size", len(data))
	return &dto.MediaObjectDTO{
		Bucket:      bucket,
		Path:        path,
		URL:         url,
		MediaType:   dto.MediaTypeOf(path),
		Size:        int64(len(data)),
		ContentType: contentType,
		UploadedAt:  s.now(),
	}, nil
}

func (s *mediaService) Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.MediaObjectDTO, error) {
	data, mt, err := s.readUpload(file)
	if err != nil {
		return nil, err
	}

	path := ObjectPath(userID, s.now(), fileExtension(file.Filename, mt))
	return s.store(ctx, s.config.PostsBucket, path, data, mt.String())
}

func (s *mediaService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.MediaObjectDTO, error) {
	data, mt, err := s.readUpload(file)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]string{"detected": mt.String()})
	}

	contentType := mt.String()
	if s.processor != nil {
		res, err := s.processor.Downscale(data)
		switch {
		case err == nil:
			data, contentType = res.Data, res.ContentType
		case errors.Is(err, imageprocessor.ErrUnsupportedFormat):
			// stored as uploaded
		default:
			return nil, apperrors.ErrInvalidFileType.WithError(err)
		}
	}

	path := ObjectPath(userID, s.now(), fileExtension(file.Filename, mt))
	return s.store(ctx, s.config.AvatarsBucket, path, data, contentType)
}

func (s *mediaService) ListLibrary(ctx context.Context, userID string) (*dto.MediaLibraryResponse, error) {
	objects, err := s.storage.List(ctx, s.config.PostsBucket, UserFolder(userID))
	if err != nil {
		return nil, apperrors.ErrExternal(err, "media", "Could not load media library")
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if !objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].LastModified.After(objects[j].LastModified)
		}
		return objects[i].Path > objects[j].Path
	})

	items := make([]dto.MediaObjectDTO, 0, len(objects))
	for _, obj := range objects {
		items = append(items, dto.MediaObjectDTO{
			Bucket:      obj.Bucket,
			Path:        obj.Path,
			URL:         s.storage.GetURL(obj.Bucket, obj.Path),
			MediaType:   dto.MediaTypeOf(obj.Path),
			Size:        obj.Size,
			ContentType: obj.ContentType,
			UploadedAt:  obj.LastModified,
		})
	}
	return &dto.MediaLibraryResponse{Items: items}, nil
}

func (s *mediaService) PublicURL(bucket, path string) string {
	return s.storage.GetURL(bucket, path)
}

func (s *mediaService) OwnsURL(userID, url string) bool {
	if userID == "" || url == "" {
		return false
	}
	prefix := s.storage.GetURL(s.config.PostsBucket, UserFolder(userID))
	if !strings.HasPrefix(url, prefix) {
		return false
	}
	rest := strings.TrimPrefix(url, prefix)
	return rest != "" && !strings.Contains(rest, "..") && !strings.Contains(rest, "/")
}

func (s *mediaService) Remove(ctx context.Context, object *dto.MediaObjectDTO) {
	if object == nil {
		return
	}
	if err := s.storage.Delete(ctx, object.Bucket, object.Path); err != nil {
		logger.CtxWithError(ctx, "Failed to remove orphaned upload", err, "bucket", object.Bucket, "path", object.Path)
	}
}

func (s *mediaService) DeleteUserMedia(ctx context.Context, userID string) error {
	var failed []string
	for _, bucket := range []string{s.config.PostsBucket, s.config.AvatarsBucket} {
		n, err := s.storage.DeletePrefix(ctx, bucket, UserFolder(userID))
		if err != nil {
			logger.CtxWithError(ctx, "Failed to delete user media", err, "bucket", bucket, "user", userID)
			failed = append(failed, bucket)
			continue
		}
		logger.CtxInfo(ctx, "User media deleted", "bucket", bucket, "objects", n)
	}
	if len(failed) > 0 {
		return fmt.Errorf("delete media in %s", strings.Join(failed, ", "))
	}
	return nil
}
