package auth

import (
	"context"
	"time"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
)

const (
	DefaultAccessTokenExpiry  = 15 * time.Minute
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
)

// TokenPair is an access/refresh token pair returned by register, login and
// refresh. ExpiresIn is the access token lifetime in seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// issueTokenPair signs a new access token, mints a fresh refresh token and
// persists it against the user, superseding any previous one.
func issueTokenPair(ctx context.Context, issuer ports.TokenIssuer, users ports.UserRepository, user *domain.User, accessExp, refreshExp time.Duration) (TokenPair, error) {
	access, err := issuer.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := issuer.NewRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	if err := users.StoreRefreshToken(ctx, user.ID, refresh, time.Now().Add(refreshExp)); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessExp.Seconds()),
	}, nil
}
