package middleware

import (
	"strings"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/pkg/apperrors"
	"creatorhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// TokenParser validates access tokens; *auth.TokenManager implements it.
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserIDKey, claims.UserID)
	c.Set(contextkeys.RoleKey, models.UserRole(claims.Role))
	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

func abort(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			abort(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			abort(c, apperrors.ErrInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the session when a valid token is present and
// lets the request through either way.
func OptionalAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := bearerToken(c); tokenStr != "" {
			if claims, err := tokens.ParseToken(tokenStr); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireRoles lets through any of the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abort(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[role] {
			abort(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abort(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.HasPermission(role, permission) {
			abort(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func GetRole(c *gin.Context) (models.UserRole, bool) {
	roleVal, exists := c.Get(contextkeys.RoleKey)
	if !exists {
		return "", false
	}
	switch role := roleVal.(type) {
	case models.UserRole:
		return role, true
	case string:
		return models.UserRole(role), true
	}
	return "", false
}
