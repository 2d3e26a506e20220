package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyTitle         = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDueDateInPast      = errors.New("due date cannot be in the past")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfRoleChange     = errors.New("cannot change own role")
)
