package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PostService interface {
	ListMyPosts(ctx context.Context, db *gorm.DB, userID string, query *dto.ListPostsQuery) (*dto.PostListResponse, error)
	GetPost(ctx context.Context, db *gorm.DB, userID, postID string) (*dto.PostDTO, error)
	// CreatePost takes either a new file or a URL from the caller's media library
	CreatePost(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, file *multipart.FileHeader) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, db *gorm.DB, userID, postID string, req *dto.UpdatePostRequest) (*dto.PostDTO, error)
	// DeletePost removes the row only; the media stays in the library
	DeletePost(ctx context.Context, db *gorm.DB, userID, postID string) error
	ListPublishedByCreator(ctx context.Context, db *gorm.DB, creatorID string, limit int) ([]dto.PostDTO, error)
}

type postService struct {
	postRepo  repositories.PostRepository
	media     MediaService
	publisher events.Publisher
	now       Clock
}

func NewPostService(postRepo repositories.PostRepository, media MediaService, publisher events.Publisher) PostService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &postService{
		postRepo:  postRepo,
		media:     media,
		publisher: publisher,
		now:       time.Now,
	}
}

// FilterFromQuery maps the posts tab controls onto a repository filter.
func FilterFromQuery(userID string, q *dto.ListPostsQuery) repositories.PostFilter {
	filter := repositories.PostFilter{CreatorID: userID, Sort: repositories.SortNewest}
	if q == nil {
		return filter
	}

	switch models.PostStatus(q.Status) {
	case models.PostStatusDraft, models.PostStatusPublished:
		filter.Status = models.PostStatus(q.Status)
	}
	if q.Sort == repositories.SortOldest {
		filter.Sort = repositories.SortOldest
	}
	filter.Search = strings.TrimSpace(q.Search)
	filter.Page = q.Page
	filter.PageSize = q.PageSize
	return filter
}

func (s *postService) ListMyPosts(ctx context.Context, db *gorm.DB, userID string, query *dto.ListPostsQuery) (*dto.PostListResponse, error) {
	filter := FilterFromQuery(userID, query)

	posts, total, err := s.postRepo.FindByFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page, pageSize := filter.Window()
	return &dto.PostListResponse{
		Posts:    dto.NewPostDTOs(posts),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *postService) GetPost(ctx context.Context, db *gorm.DB, userID, postID string) (*dto.PostDTO, error) {
	post, err := s.findOwnedPost(db, userID, postID)
	if err != nil {
		return nil, err
	}
	out := dto.NewPostDTO(post)
	return &out, nil
}

func (s *postService) CreatePost(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, file *multipart.FileHeader) (*dto.PostDTO, error) {
	status := models.PostStatus(req.Status)
	if status == "" {
		status = models.PostStatusDraft
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("post", "Status must be draft or published")
	}

	var (
		mediaURL string
		uploaded *dto.MediaObjectDTO
	)
	libraryURL := strings.TrimSpace(req.LibraryURL)
	switch {
	case file != nil:
		obj, err := s.media.Upload(ctx, userID, file)
		if err != nil {
			return nil, err
		}
		uploaded, mediaURL = obj, obj.URL
	case libraryURL != "":
		if !s.media.OwnsURL(userID, libraryURL) {
			return nil, apperrors.ErrForeignMedia
		}
		mediaURL = libraryURL
	default:
		return nil, apperrors.ErrNoMediaSelected
	}

	post := &models.Post{
		CreatorID: userID,
		MediaURL:  mediaURL,
		Title:     strings.TrimSpace(req.Title),
		Caption:   strings.TrimSpace(req.Caption),
		Category:  strings.TrimSpace(req.Category),
		Status:    status,
	}
	if err := s.postRepo.Create(db, post); err != nil {
		s.media.Remove(ctx, uploaded)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Post created", "post_id", post.ID, "status", post.Status, "from_library", uploaded == nil)
	s.publish(ctx, events.PostCreated, post)

	out := dto.NewPostDTO(post)
	return &out, nil
}

func (s *postService) UpdatePost(ctx context.Context, db *gorm.DB, userID, postID string, req *dto.UpdatePostRequest) (*dto.PostDTO, error) {
	if _, err := s.findOwnedPost(db, userID, postID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Caption != nil {
		fields["caption"] = strings.TrimSpace(*req.Caption)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidStatus("post", "Status must be draft or published")
		}
		fields["status"] = status
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.postRepo.Update(db, postID, fields); err != nil {
			if errors.Is(err, repositories.ErrPostNotFound) {
				return nil, apperrors.ErrPostNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	post, err := s.findOwnedPost(db, userID, postID)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Post updated", "post_id", postID, "fields", len(fields))
	s.publish(ctx, events.PostUpdated, post)

	out := dto.NewPostDTO(post)
	return &out, nil
}

func (s *postService) DeletePost(ctx context.Context, db *gorm.DB, userID, postID string) error {
	post, err := s.findOwnedPost(db, userID, postID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(db, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Post deleted", "post_id", postID)
	s.publish(ctx, events.PostDeleted, post)
	return nil
}

func (s *postService) ListPublishedByCreator(ctx context.Context, db *gorm.DB, creatorID string, limit int) ([]dto.PostDTO, error) {
	posts, _, err := s.postRepo.FindByFilter(db, repositories.PostFilter{
		CreatorID: creatorID,
		Status:    models.PostStatusPublished,
		Sort:      repositories.SortNewest,
		PageSize:  limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPostDTOs(posts), nil
}

func (s *postService) findOwnedPost(db *gorm.DB, userID, postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(db, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if post.CreatorID != userID {
		return nil, apperrors.ErrNotPostOwner
	}
	return post, nil
}

// publish never fails the request; the row is already written.
func (s *postService) publish(ctx context.Context, eventType events.PostEventType, post *models.Post) {
	event, err := events.NewPostEvent(eventType, post, s.now())
	if err == nil {
		err = s.publisher.PublishPost(ctx, event)
	}
	if err != nil {
		logger.CtxWithError(ctx, "Failed to publish post event", err, "type", eventType, "post_id", post.ID)
	}
}
