package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/01_create_users.up.sql
var createUsersUp string

//go:embed migrations/02_create_tasks.up.sql
var createTasksUp string

// Migrate applies the embedded schema. Statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createUsersUp); err != nil {
		return fmt.Errorf("apply users migration: %w", err)
	}
	if _, err := pool.Exec(ctx, createTasksUp); err != nil {
		return fmt.Errorf("apply tasks migration: %w", err)
	}
	return nil
}
