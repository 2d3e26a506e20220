package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	out := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		out.LastLoginAt = &t
	}
	if u.RefreshToken != nil {
		s := *u.RefreshToken
		out.RefreshToken = &s
	}
	if u.RefreshTokenExpiresAt != nil {
		t := *u.RefreshTokenExpiresAt
		out.RefreshTokenExpiresAt = &t
	}
	return &out
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListWithTaskCounts(_ context.Context) ([]ports.UserWithTaskCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.UserWithTaskCount, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, ports.UserWithTaskCount{User: *cloneUser(u)})
	}
	return out, nil
}

func (r *fakeUserRepo) StoreRefreshToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.RefreshToken = &token
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.RefreshToken = nil
	u.RefreshTokenExpiresAt = nil
	return nil
}

func (r *fakeUserRepo) SetLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.LastLoginAt = &at
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, userID uuid.UUID, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.Role = role
	return nil
}

var _ ports.UserRepository = (*fakeUserRepo)(nil)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

// fakeIssuer encodes the user id in the access token so ValidateExpired can
// recover it without real signing.
type fakeIssuer struct {
	mu  sync.Mutex
	seq int
}

func (f *fakeIssuer) IssueAccessToken(user *domain.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("access:%s:%s:%d", user.ID, user.Role, f.seq), nil
}

func (f *fakeIssuer) NewRefreshToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("refresh-%d", f.seq), nil
}

func (f *fakeIssuer) ValidateAccessToken(tokenString string) (*ports.AccessClaims, error) {
	return f.ValidateExpired(tokenString)
}

func (f *fakeIssuer) ValidateExpired(tokenString string) (*ports.AccessClaims, error) {
	parts := strings.Split(tokenString, ":")
	if len(parts) != 4 || parts[0] != "access" {
		return nil, errors.New("bad token")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(parts[2])
	if !ok {
		return nil, errors.New("bad role")
	}
	return &ports.AccessClaims{UserID: id, Role: role}, nil
}

var _ ports.TokenIssuer = (*fakeIssuer)(nil)
