package dto

// DeleteUserRequest keeps the camelCase key of the admin tool.
type DeleteUserRequest struct {
	UserID string `json:"userId"`
}
