package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
)

const taskColumns = `id, title, description, completed, due_date, priority, created_at, updated_at, user_id`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	const q = `
		INSERT INTO tasks (id, title, description, completed, due_date, priority, created_at, updated_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, q, task.ID, task.Title, task.Description, task.Completed,
		task.DueDate, task.Priority.String(), task.CreatedAt, task.UpdatedAt, task.OwnerID)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	var (
		conds []string
		args  []any
	)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, filter.Priority.String())
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.TitleQuery != "" {
		args = append(args, "%"+escapeLike(filter.TitleQuery)+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *task)
	}
	return out, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	const q = `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, due_date = $4, priority = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.pool.Exec(ctx, q, task.Title, task.Description, task.Completed,
		task.DueDate, task.Priority.String(), task.UpdatedAt, task.ID)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

// escapeLike neutralizes LIKE wildcards so the search input matches
// literally inside the surrounding %...% pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var priority string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.DueDate,
		&priority, &t.CreatedAt, &t.UpdatedAt, &t.OwnerID); err != nil {
		return nil, err
	}
	t.Priority, _ = domain.ParsePriority(priority)
	return &t, nil
}

// Ensure TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)
