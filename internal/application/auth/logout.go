package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

type Logout struct {
	users ports.UserRepository
}

func NewLogout(users ports.UserRepository) *Logout {
	return &Logout{users: users}
}

// Execute clears the stored refresh token and its expiry, making any
// outstanding refresh token immediately unusable. Idempotent for users that
// exist; an unknown id is reported as not found.
func (uc *Logout) Execute(ctx context.Context, userID uuid.UUID) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	return uc.users.ClearRefreshToken(ctx, userID)
}
