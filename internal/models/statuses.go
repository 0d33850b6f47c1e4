package models

type UserStatus string
type UserRole string
type PostStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleCreator UserRole = "creator"
	UserRoleBrand   UserRole = "brand"
	UserRoleAdmin   UserRole = "admin"

	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCreator, UserRoleBrand, UserRoleAdmin:
		return true
	}
	return false
}

func (s PostStatus) IsValid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}
