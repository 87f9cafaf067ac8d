package domain

import (
	"context"
	"errors"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalConflict = errors.New("goal version conflict")
)

type GoalRepository interface {
	// Create persists a new goal definition.
	Create(ctx context.Context, goal *Goal) error

	// GetByID retrieves a goal by its unique identifier.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// ListByUserID retrieves all goals owned by a user, archived ones included.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	// Update modifies an existing goal.
	// Implementations must handle optimistic locking (version check).
	Update(ctx context.Context, goal *Goal) error

	// Archive marks a goal inactive without destroying its history.
	Archive(ctx context.Context, id string) error

	// UpdateRunStats persists recomputed run lengths for a goal.
	UpdateRunStats(ctx context.Context, id string, current, longest int) error
}
