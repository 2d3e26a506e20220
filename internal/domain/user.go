package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole returns the Role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller, extracted once at the request
// boundary and threaded explicitly into every service call.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     Role
}

// IsAdmin reports whether the identity carries the Admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// User is a registered account. RefreshToken holds the single currently
// valid refresh token; it is rotated on login/refresh and cleared on logout.
type User struct {
	ID                    uuid.UUID
	Username              string
	Email                 string
	PasswordHash          string
	Role                  Role
	CreatedAt             time.Time
	LastLoginAt           *time.Time
	RefreshToken          *string
	RefreshTokenExpiresAt *time.Time
}
