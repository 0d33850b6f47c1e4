package dto

import (
	"path"
	"strings"
	"time"

	"creatorhub_backend/internal/models"
)

// ListPostsQuery backs the posts tab: status chips, search box and sort.
type ListPostsQuery struct {
	Status   string `form:"status" validate:"is-post-filter"`
	Search   string `form:"q" validate:"max=200"`
	Sort     string `form:"sort" validate:"omitempty,oneof=newest oldest"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=200"`
}

// CreatePostRequest is the multipart upload form. Either a file part named
// "file" or LibraryURL must be present.
type CreatePostRequest struct {
	Title      string `form:"title" validate:"max=255"`
	Caption    string `form:"caption" validate:"max=5000"`
	Category   string `form:"category" validate:"max=100"`
	Status     string `form:"status" validate:"omitempty,is-post-status"`
	LibraryURL string `form:"library_url" validate:"max=1000"`
}

// UpdatePostRequest only touches the fields that are sent.
type UpdatePostRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Caption  *string `json:"caption" validate:"omitempty,max=5000"`
	Category *string `json:"category" validate:"omitempty,max=100"`
	Status   *string `json:"status" validate:"omitempty,is-post-status"`
}

type PostDTO struct {
	ID        string            `json:"id"`
	CreatorID string            `json:"creator_id"`
	MediaURL  string            `json:"media_url"`
	MediaType string            `json:"media_type"`
	Title     string            `json:"title"`
	Caption   string            `json:"caption"`
	Category  string            `json:"category"`
	Status    models.PostStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type PostListResponse struct {
	Posts    []PostDTO `json:"posts"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true, ".m4v": true, ".avi": true, ".mkv": true,
}

// MediaTypeOf guesses image or video from the URL extension, the way the
// post cards pick between an img and a video tag.
func MediaTypeOf(mediaURL string) string {
	clean := mediaURL
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if videoExtensions[strings.ToLower(path.Ext(clean))] {
		return "video"
	}
	return "image"
}

func NewPostDTO(p *models.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		CreatorID: p.CreatorID,
		MediaURL:  p.MediaURL,
		MediaType: MediaTypeOf(p.MediaURL),
		Title:     p.Title,
		Caption:   p.Caption,
		Category:  p.Category,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostDTO(&posts[i]))
	}
	return out
}
