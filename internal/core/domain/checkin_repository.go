package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrCheckInConflict = errors.New("check-in already recorded for this day")
)

type CheckInRepository interface {
	// Create persists a new check-in. At most one record may exist per
	// goal and day, or per streak, member and day; violations surface
	// as ErrCheckInConflict.
	Create(ctx context.Context, checkIn *CheckIn) error

	// GetByID retrieves a single active (non-deleted) check-in.
	GetByID(ctx context.Context, id string) (*CheckIn, error)

	// Delete performs a soft delete. It requires userID to ensure the
	// caller owns the record being deleted.
	Delete(ctx context.Context, id string, userID string) error

	// ListByGoalID retrieves a goal's check-ins within an inclusive day
	// range, oldest first.
	ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*CheckIn, error)

	// ListAllByGoalID retrieves a goal's full check-in history, oldest
	// first. Used by the run recompute worker.
	ListAllByGoalID(ctx context.Context, goalID string) ([]*CheckIn, error)

	// ListByStreakMember retrieves one member's check-ins for a streak
	// within an inclusive day range, oldest first.
	ListByStreakMember(ctx context.Context, streakID, userID string, from, to time.Time) ([]*CheckIn, error)

	// ListAllByStreakMember retrieves one member's full streak history,
	// oldest first. Used by the run recompute worker.
	ListAllByStreakMember(ctx context.Context, streakID, userID string) ([]*CheckIn, error)

	// ListByUser retrieves all of a user's check-ins (goal and streak)
	// within an inclusive day range, oldest first.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*CheckIn, error)

	// CountActiveGoalByUser groups goal-side activity per user over the
	// range: records where done is set or a positive value was logged.
	CountActiveGoalByUser(ctx context.Context, from, to time.Time) (map[string]int, error)

	// CountDoneStreakByUser groups streak-side activity per user over
	// the range: only records with the done flag set.
	CountDoneStreakByUser(ctx context.Context, from, to time.Time) (map[string]int, error)
}
