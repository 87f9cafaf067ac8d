package domain

import (
	"context"
	"errors"
)

var (
	ErrStreakNotFound = errors.New("streak not found")
	ErrAlreadyMember  = errors.New("user is already a member of this streak")
	ErrNotMember      = errors.New("user is not a member of this streak")
)

type StreakRepository interface {
	// Create persists a new streak.
	Create(ctx context.Context, streak *Streak) error

	// GetByID retrieves a streak by its unique identifier.
	GetByID(ctx context.Context, id string) (*Streak, error)

	// ListByUserID retrieves the streaks a user is a member of.
	ListByUserID(ctx context.Context, userID string) ([]*Streak, error)

	// AddMember enrolls a user; joining twice surfaces ErrAlreadyMember.
	AddMember(ctx context.Context, member *StreakMember) error

	// GetMember retrieves one membership, ErrNotMember when absent.
	GetMember(ctx context.Context, streakID, userID string) (*StreakMember, error)

	// ListMembers retrieves a streak's members ordered by join time.
	ListMembers(ctx context.Context, streakID string) ([]*StreakMember, error)

	// UpdateMemberRunStats persists recomputed run lengths for a member.
	UpdateMemberRunStats(ctx context.Context, streakID, userID string, current, longest int) error
}
