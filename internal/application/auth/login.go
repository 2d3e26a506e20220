package auth

import (
	"context"
	"time"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

type Login struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	accessExp  time.Duration
	refreshExp time.Duration
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp, refreshExp time.Duration) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Login{
		users:      users,
		hasher:     hasher,
		issuer:     issuer,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

// Execute verifies credentials, records the login time and rotates the
// refresh token. Unknown email and wrong password return the same error so
// callers cannot enumerate accounts.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if err := uc.users.SetLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}
	tokens, err := issueTokenPair(ctx, uc.issuer, uc.users, user, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: tokens}, nil
}
