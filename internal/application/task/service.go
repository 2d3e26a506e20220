package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkarlsson/taskhive/internal/application/ports"
	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

const maxTitleLength = 200

// Service implements ownership-checked task CRUD. Every operation takes the
// caller identity explicitly: Admin may act on any task, everyone else only
// on their own.
type Service struct {
	tasks ports.TaskRepository
}

func NewService(tasks ports.TaskRepository) *Service {
	return &Service{tasks: tasks}
}

type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string // empty defaults to Medium
}

// Patch carries partial-update fields. Nil means "leave untouched"; a
// present-but-blank title is rejected rather than silently ignored.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	Priority    *string
}

func (s *Service) Create(ctx context.Context, ident domain.Identity, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, domerrors.ErrTitleTooLong
	}
	priority := domain.PriorityMedium
	if input.Priority != "" {
		p, ok := domain.ParsePriority(input.Priority)
		if !ok {
			return nil, domerrors.ErrInvalidPriority
		}
		priority = p
	}
	due, err := normalizeDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		Completed:   false,
		DueDate:     due,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     ident.UserID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.Task, error) {
	return s.authorized(ctx, ident, id)
}

// ListAll returns every task in the system. Admin only.
func (s *Service) ListAll(ctx context.Context, ident domain.Identity) ([]domain.Task, error) {
	if !ident.IsAdmin() {
		return nil, domerrors.ErrForbidden
	}
	return s.tasks.List(ctx, ports.TaskFilter{})
}

// ListMine returns the caller's own tasks.
func (s *Service) ListMine(ctx context.Context, ident domain.Identity) ([]domain.Task, error) {
	owner := ident.UserID
	return s.tasks.List(ctx, ports.TaskFilter{OwnerID: &owner})
}

func (s *Service) Update(ctx context.Context, ident domain.Identity, id uuid.UUID, patch Patch) (*domain.Task, error) {
	t, err := s.authorized(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domerrors.ErrEmptyTitle
		}
		if len(title) > maxTitleLength {
			return nil, domerrors.ErrTitleTooLong
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		due, err := normalizeDueDate(patch.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}
	if patch.Priority != nil {
		p, ok := domain.ParsePriority(*patch.Priority)
		if !ok {
			return nil, domerrors.ErrInvalidPriority
		}
		t.Priority = p
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, ident domain.Identity, id uuid.UUID) error {
	if _, err := s.authorized(ctx, ident, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// SetCompleted is a convenience partial update of the completion flag.
func (s *Service) SetCompleted(ctx context.Context, ident domain.Identity, id uuid.UUID, completed bool) (*domain.Task, error) {
	return s.Update(ctx, ident, id, Patch{Completed: &completed})
}

// SearchByTitle matches the title substring case-insensitively over the
// caller's authorization scope.
func (s *Service) SearchByTitle(ctx context.Context, ident domain.Identity, query string) ([]domain.Task, error) {
	return s.tasks.List(ctx, ports.TaskFilter{OwnerID: scope(ident), TitleQuery: query})
}

func (s *Service) ListByCompletion(ctx context.Context, ident domain.Identity, completed bool) ([]domain.Task, error) {
	return s.tasks.List(ctx, ports.TaskFilter{OwnerID: scope(ident), Completed: &completed})
}

func (s *Service) ListByPriority(ctx context.Context, ident domain.Identity, priority string) ([]domain.Task, error) {
	p, ok := domain.ParsePriority(priority)
	if !ok {
		return nil, domerrors.ErrInvalidPriority
	}
	return s.tasks.List(ctx, ports.TaskFilter{OwnerID: scope(ident), Priority: &p})
}

// authorized fetches the task and applies the ownership rule.
func (s *Service) authorized(ctx context.Context, ident domain.Identity, id uuid.UUID) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	if !ident.IsAdmin() && t.OwnerID != ident.UserID {
		return nil, domerrors.ErrForbidden
	}
	return t, nil
}

// scope returns nil for admins (all tasks) and the caller's id otherwise.
func scope(ident domain.Identity) *uuid.UUID {
	if ident.IsAdmin() {
		return nil
	}
	owner := ident.UserID
	return &owner
}

// normalizeDueDate converts the due date to UTC and rejects dates strictly
// before today, comparing calendar days only.
func normalizeDueDate(due *time.Time) (*time.Time, error) {
	if due == nil {
		return nil, nil
	}
	d := due.UTC()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, domerrors.ErrDueDateInPast
	}
	return &d, nil
}
