package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/domain"
)

// UserWithTaskCount is a user row joined with the number of tasks it owns.
type UserWithTaskCount struct {
	User      domain.User
	TaskCount int
}

// UserRepository defines persistence for user accounts. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListWithTaskCounts(ctx context.Context) ([]UserWithTaskCount, error)
	// StoreRefreshToken replaces the user's refresh token and its expiry.
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	// ClearRefreshToken invalidates any outstanding refresh token.
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
	SetLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role domain.Role) error
}

// TaskFilter narrows task listings. Nil fields are ignored; OwnerID scopes
// the result set to a single owner (non-admin callers).
type TaskFilter struct {
	OwnerID    *uuid.UUID
	Completed  *bool
	Priority   *domain.Priority
	TitleQuery string
}

// TaskRepository defines persistence for tasks. GetByID returns (nil, nil)
// when no row matches.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
