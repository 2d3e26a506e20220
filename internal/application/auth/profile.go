package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

type Profile struct {
	users ports.UserRepository
}

func NewProfile(users ports.UserRepository) *Profile {
	return &Profile{users: users}
}

func (uc *Profile) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}
