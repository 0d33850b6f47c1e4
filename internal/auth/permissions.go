package auth

import (
	"creatorhub_backend/internal/models"
)

const (
	PermPostsRead    = "posts:read:self"
	PermPostsWrite   = "posts:write:self"
	PermMediaUpload  = "media:upload"
	PermMediaLibrary = "media:library"
	PermDashCreator  = "dashboard:creator"
	PermDashBrand    = "dashboard:brand"
	PermUsersDelete  = "users:delete"
)

// Permissions maps each role to what it may do.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		PermUsersDelete,
		PermMediaUpload,
	},
	models.UserRoleCreator: {
		PermPostsRead,
		PermPostsWrite,
		PermMediaUpload,
		PermMediaLibrary,
		PermDashCreator,
	},
	models.UserRoleBrand: {
		PermMediaUpload,
		PermDashBrand,
	},
}

// HasPermission reports whether the role carries the permission.
func HasPermission(role models.UserRole, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
