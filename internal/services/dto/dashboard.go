package dto

import "creatorhub_backend/internal/models"

type DashboardQuery struct {
	Section string `form:"section" validate:"max=50"`
}

type SectionDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DashboardResponse renders one tab of a role dashboard.
type DashboardResponse struct {
	Role     models.UserRole `json:"role"`
	Welcome  string          `json:"welcome"`
	Sections []SectionDTO    `json:"sections"`
	Active   string          `json:"active_section"`
	Profile  ProfileCardDTO  `json:"profile"`
	Data     interface{}     `json:"data"`
}

// CreatorProfileSection is the profile tab of the creator dashboard.
type CreatorProfileSection struct {
	Profile ProfileDTO `json:"profile"`
	Posts   []PostDTO  `json:"posts"`
}

// BrandProfileSection is the profile tab of the brand dashboard.
type BrandProfileSection struct {
	Profile ProfileDTO `json:"profile"`
	Brand   *BrandDTO  `json:"brand,omitempty"`
}

// PlaceholderSection is returned by tabs with no backing data yet.
type PlaceholderSection struct {
	Items []interface{} `json:"items"`
}
