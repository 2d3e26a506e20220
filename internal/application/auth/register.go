package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterResult struct {
	User   *domain.User
	Tokens TokenPair
}

type Register struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	accessExp  time.Duration
	refreshExp time.Duration
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp, refreshExp time.Duration) *Register {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	if refreshExp <= 0 {
		refreshExp = DefaultRefreshTokenExpiry
	}
	return &Register{
		users:      users,
		hasher:     hasher,
		issuer:     issuer,
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

// Execute creates the account with role forced to User regardless of input
// and returns a signed token pair alongside the public profile.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domerrors.ErrPasswordMismatch
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	existing, err = uc.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUsernameTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	tokens, err := issueTokenPair(ctx, uc.issuer, uc.users, user, uc.accessExp, uc.refreshExp)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{User: user, Tokens: tokens}, nil
}
