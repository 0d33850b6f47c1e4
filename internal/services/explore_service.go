package services

import (
	"context"
	"strings"

	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ExploreService interface {
	// ListPublished returns published posts, newest first, with their creators
	ListPublished(ctx context.Context, db *gorm.DB, query *dto.ExploreQuery) (*dto.ExploreResponse, error)
}

type exploreService struct {
	postRepo repositories.PostRepository
}

func NewExploreService(postRepo repositories.PostRepository) ExploreService {
	return &exploreService{postRepo: postRepo}
}

func (s *exploreService) ListPublished(ctx context.Context, db *gorm.DB, query *dto.ExploreQuery) (*dto.ExploreResponse, error) {
	filter := repositories.PostFilter{Sort: repositories.SortNewest}
	if query != nil {
		filter.Search = strings.TrimSpace(query.Search)
		filter.Page = query.Page
		filter.PageSize = query.PageSize
	}

	posts, total, err := s.postRepo.FindPublishedWithCreator(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ExplorePostDTO, 0, len(posts))
	for i := range posts {
		if posts[i].Creator == nil {
			continue
		}
		out = append(out, dto.NewExplorePostDTO(&posts[i]))
	}
	return &dto.ExploreResponse{Posts: out, Total: total}, nil
}
