package dto

import (
	"time"

	"creatorhub_backend/internal/models"
)

type ExploreQuery struct {
	Search   string `form:"q" validate:"max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=200"`
}

type ExploreCreatorDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

type ExplorePostDTO struct {
	ID        string            `json:"id"`
	MediaURL  string            `json:"media_url"`
	MediaType string            `json:"media_type"`
	Title     string            `json:"title"`
	Caption   string            `json:"caption"`
	Category  string            `json:"category"`
	CreatedAt time.Time         `json:"created_at"`
	Creator   ExploreCreatorDTO `json:"creator"`
}

type ExploreResponse struct {
	Posts []ExplorePostDTO `json:"posts"`
	Total int64            `json:"total"`
}

// NewExplorePostDTO expects the creator to be loaded.
func NewExplorePostDTO(p *models.Post) ExplorePostDTO {
	out := ExplorePostDTO{
		ID:        p.ID,
		MediaURL:  p.MediaURL,
		MediaType: MediaTypeOf(p.MediaURL),
		Title:     p.Title,
		Caption:   p.Caption,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
	if p.Creator != nil {
		out.Creator = ExploreCreatorDTO{
			ID:        p.Creator.ID,
			FirstName: p.Creator.FirstName,
			LastName:  p.Creator.LastName,
			AvatarURL: p.Creator.AvatarURL,
		}
	}
	return out
}
