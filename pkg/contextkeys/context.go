package contextkeys

// Custom type so keys never collide with other packages.
type contextKey string

// DBContextKey holds the *gorm.DB (pool or transaction) in the request context.
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on the gin context.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
