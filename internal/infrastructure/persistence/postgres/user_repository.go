package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

const userColumns = `id, username, email, password_hash, role, created_at, last_login_at, refresh_token, refresh_token_expires_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const q = `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, q, user.ID, user.Username, user.Email, user.PasswordHash, user.Role.String(), user.CreatedAt)
	return mapUniqueViolation(err)
}

// mapUniqueViolation converts a unique-index violation on users into the
// matching taken sentinel. A register that loses the race between the
// duplicate pre-check and the insert still reports the duplicate.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_idx":
		return domerrors.ErrEmailTaken
	case "users_username_idx":
		return domerrors.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ListWithTaskCounts(ctx context.Context) ([]ports.UserWithTaskCount, error) {
	const q = `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at,
		       u.last_login_at, u.refresh_token, u.refresh_token_expires_at,
		       COUNT(t.id) AS task_count
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at
	`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.UserWithTaskCount
	for rows.Next() {
		var u domain.User
		var role string
		var count int
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt,
			&u.LastLoginAt, &u.RefreshToken, &u.RefreshTokenExpiresAt, &count); err != nil {
			return nil, err
		}
		u.Role, _ = domain.ParseRole(role)
		out = append(out, ports.UserWithTaskCount{User: u, TaskCount: count})
	}
	return out, rows.Err()
}

func (r *UserRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	const q = `UPDATE users SET refresh_token = $1, refresh_token_expires_at = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, q, token, expiresAt, userID)
	return err
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const q = `UPDATE users SET refresh_token = NULL, refresh_token_expires_at = NULL WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, userID)
	return err
}

func (r *UserRepository) SetLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const q = `UPDATE users SET last_login_at = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, at, userID)
	return err
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role domain.Role) error {
	const q = `UPDATE users SET role = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, role.String(), userID)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt,
		&u.LastLoginAt, &u.RefreshToken, &u.RefreshTokenExpiresAt); err != nil {
		return nil, err
	}
	u.Role, _ = domain.ParseRole(role)
	return &u, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
