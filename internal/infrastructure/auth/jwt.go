package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
)

const refreshTokenBytes = 64

// TokenIssuer implements ports.TokenIssuer with HS256 and a server-held
// symmetric secret.
type TokenIssuer struct {
	secret       []byte
	issuer       string
	audience     string
	accessExpiry time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewTokenIssuer(secret []byte, issuer, audience string, accessExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:       secret,
		issuer:       issuer,
		audience:     audience,
		accessExpiry: accessExpiry,
	}
}

func (t *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessExpiry)),
		},
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// NewRefreshToken mints an opaque random token with no embedded structure.
func (t *TokenIssuer) NewRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (t *TokenIssuer) ValidateAccessToken(tokenString string) (*ports.AccessClaims, error) {
	return t.parse(tokenString, false)
}

// ValidateExpired accepts a token whose expiry has elapsed but whose
// signature, issuer, and audience still check out. Refresh flow only.
func (t *TokenIssuer) ValidateExpired(tokenString string) (*ports.AccessClaims, error) {
	return t.parse(tokenString, true)
}

func (t *TokenIssuer) parse(tokenString string, allowExpired bool) (*ports.AccessClaims, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithAudience(t.audience))
	if err != nil {
		// jwt/v5 still populates claims when the only failure is expiry.
		if !allowExpired || !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		// The validation error is joined, so expiry alone does not prove
		// the issuer and audience checks passed. Re-verify them here.
		if claims.Issuer != t.issuer {
			return nil, jwt.ErrTokenInvalidIssuer
		}
		if !hasAudience(claims.Audience, t.audience) {
			return nil, jwt.ErrTokenInvalidAudience
		}
	} else if !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, fmt.Errorf("unknown role claim %q", claims.Role)
	}
	return &ports.AccessClaims{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     role,
		TokenID:  claims.ID,
	}, nil
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

// Ensure TokenIssuer implements ports.TokenIssuer.
var _ ports.TokenIssuer = (*TokenIssuer)(nil)
