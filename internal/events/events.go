package events

import (
	"context"
	"encoding/json"
	"time"

	"creatorhub_backend/internal/models"

	"gorm.io/datatypes"
)

type PostEventType string

const (
	PostCreated PostEventType = "post.created"
	PostUpdated PostEventType = "post.updated"
	PostDeleted PostEventType = "post.deleted"
)

// PostEvent is published after a post write commits.
type PostEvent struct {
	Type       PostEventType  `json:"type"`
	PostID     string         `json:"post_id"`
	CreatorID  string         `json:"creator_id"`
	Status     string         `json:"status,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Post       datatypes.JSON `json:"post,omitempty"`
}

// Publisher sends post events to downstream consumers.
type Publisher interface {
	PublishPost(ctx context.Context, event PostEvent) error
	Close() error
}

// NewPostEvent snapshots the post into the event payload. Deletes carry no snapshot.
func NewPostEvent(eventType PostEventType, post *models.Post, now time.Time) (PostEvent, error) {
	event := PostEvent{
		Type:       eventType,
		PostID:     post.ID,
		CreatorID:  post.CreatorID,
		Status:     string(post.Status),
		OccurredAt: now.UTC(),
	}
	if eventType == PostDeleted {
		return event, nil
	}

	snapshot, err := json.Marshal(post)
	if err != nil {
		return PostEvent{}, err
	}
	event.Post = datatypes.JSON(snapshot)
	return event, nil
}
