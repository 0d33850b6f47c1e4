package models

// Post belongs to one creator; only published posts reach the explore page.
type Post struct {
	BaseModel
	CreatorID string     `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	MediaURL  string     `gorm:"size:1000;not null" json:"media_url"`
	Title     string     `gorm:"size:255" json:"title"`
	Caption   string     `gorm:"type:text" json:"caption"`
	Category  string     `gorm:"size:100" json:"category"`
	Status    PostStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	Creator *Profile `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
}
