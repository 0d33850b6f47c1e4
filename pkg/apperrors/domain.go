package apperrors

import (
	"net/http"
)

// ErrNotFound wraps a repository miss (404).
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a unique-constraint hit (409).
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrExternal wraps a failure of storage, mail or broker (503).
func ErrExternal(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusServiceUnavailable)
}

// --- Auth ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please confirm your email address",
	http.StatusForbidden,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrUnknownRole = New(
	CodeUnknownRole,
	"auth",
	"Unknown user role",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Profile ---

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Could not load user profile.",
	http.StatusNotFound,
)

var ErrBrandNotFound = New(
	CodeNotFound,
	"profile",
	"Brand profile not found",
	http.StatusNotFound,
)

// --- Posts ---

var ErrPostNotFound = New(
	CodeNotFound,
	"post",
	"Post not found",
	http.StatusNotFound,
)

var ErrNotPostOwner = New(
	CodeForbidden,
	"post",
	"You can only manage your own posts",
	http.StatusForbidden,
)

var ErrNoMediaSelected = New(
	CodeValidationFailed,
	"post",
	"No media selected",
	http.StatusBadRequest,
)

var ErrForeignMedia = New(
	CodeForbidden,
	"post",
	"Selected media does not belong to your library",
	http.StatusForbidden,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"media",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"media",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Admin ---

var ErrMissingUserID = New(
	CodeValidationFailed,
	"admin",
	"Missing userId",
	http.StatusBadRequest,
)

var ErrCannotDeleteSelf = New(
	CodeForbidden,
	"admin",
	"Operation on self is not allowed",
	http.StatusForbidden,
)
