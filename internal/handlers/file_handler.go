package handlers

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"strings"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// sniffLen matches what mimetype reads by default.
const sniffLen = 3072

// FileHandler serves objects of the local storage backend. With minio the
// public URLs point at the object store and this handler is not mounted.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
	buckets map[string]bool
}

func NewFileHandler(base *BaseHandler, store storage.Storage, buckets ...string) *FileHandler {
	allowed := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		allowed[b] = true
	}
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
		buckets:     allowed,
	}
}

func (h *FileHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/files/:bucket/*path", h.ServeFile)
}

// ServeFile streams bucket/path with a sniffed content type.
func (h *FileHandler) ServeFile(c *gin.Context) {
	bucket := c.Param("bucket")
	path := strings.TrimPrefix(c.Param("path"), "/")

	if !h.buckets[bucket] {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), bucket, path)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	buffered := bufio.NewReaderSize(reader, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		h.HandleServiceError(c, err)
		return
	}

	contentType := mimetype.Detect(head).String()
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, buffered); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to stream file", err, "bucket", bucket, "path", path)
	}
}
