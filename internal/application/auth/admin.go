package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

// ListUsers returns every user with a computed task count. Admin only.
type ListUsers struct {
	users ports.UserRepository
}

func NewListUsers(users ports.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute(ctx context.Context, requester domain.Identity) ([]ports.UserWithTaskCount, error) {
	if !requester.IsAdmin() {
		return nil, domerrors.ErrForbidden
	}
	return uc.users.ListWithTaskCounts(ctx)
}

// UpdateUserRole changes another user's role. Admin only; admins cannot
// change their own role.
type UpdateUserRole struct {
	users ports.UserRepository
}

func NewUpdateUserRole(users ports.UserRepository) *UpdateUserRole {
	return &UpdateUserRole{users: users}
}

func (uc *UpdateUserRole) Execute(ctx context.Context, requester domain.Identity, targetID uuid.UUID, newRole string) error {
	if !requester.IsAdmin() {
		return domerrors.ErrForbidden
	}
	if targetID == requester.UserID {
		return domerrors.ErrSelfRoleChange
	}
	role, ok := domain.ParseRole(newRole)
	if !ok {
		return domerrors.ErrInvalidRole
	}
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domerrors.ErrUserNotFound
	}
	return uc.users.UpdateRole(ctx, targetID, role)
}
