package dto

import "time"

type UploadMediaRequest struct {
	Kind string `form:"kind" validate:"omitempty,oneof=post avatar"`
}

type MediaObjectDTO struct {
	Bucket      string    `json:"bucket"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	MediaType   string    `json:"media_type"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type MediaLibraryResponse struct {
	Items []MediaObjectDTO `json:"items"`
}
