package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority returns the Priority for s, or false when s is not a known priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

func (p Priority) String() string { return string(p) }

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     uuid.UUID
}
