package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	Tokens TokenPair
}

type Refresh struct {
	users      ports.UserRepository
	issuer     ports.TokenIssuer
	accessExp  time.Duration
	refreshExp time.Duration
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer, accessExp, refreshExp time.Duration) *Refresh {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Refresh{
		users:      users,
		issuer:     issuer,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

// Execute recovers identity from a possibly expired but cryptographically
// genuine access token, then exchanges the stored refresh token for a new
// pair. Rotation is single-use: storing the new refresh token invalidates
// the presented one.
func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.RefreshToken == "" {
		return nil, domerrors.ErrInvalidToken
	}
	claims, err := uc.issuer.ValidateExpired(input.AccessToken)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == nil || user.RefreshTokenExpiresAt == nil {
		return nil, domerrors.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(input.RefreshToken)) != 1 {
		return nil, domerrors.ErrInvalidToken
	}
	if time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, domerrors.ErrInvalidToken
	}
	tokens, err := issueTokenPair(ctx, uc.issuer, uc.users, user, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{Tokens: tokens}, nil
}
