package ports

import (
	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/domain"
)

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AccessClaims are the identity fields carried in a signed access token.
type AccessClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     domain.Role
	TokenID  string
}

// Identity converts the claims into a domain identity.
func (c AccessClaims) Identity() domain.Identity {
	return domain.Identity{
		UserID:   c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
	}
}

// TokenIssuer signs and validates JWTs (HS256) and mints opaque refresh tokens.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	// NewRefreshToken returns a cryptographically random opaque token with
	// no embedded structure. The caller persists it with its expiry.
	NewRefreshToken() (string, error)
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
	// ValidateExpired behaves like ValidateAccessToken but accepts a token
	// whose expiry has elapsed. Used only by the refresh flow.
	ValidateExpired(tokenString string) (*AccessClaims, error)
}
