package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStreakNameEmpty   = errors.New("streak name cannot be empty")
	ErrStreakNameTooLong = errors.New("streak name is too long (max 100 chars)")
	ErrStreakInvalidUser = errors.New("invalid streak creator id")
)

// Streak is a shared challenge several users check into day by day.
type Streak struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatorID string    `json:"creator_id" db:"creator_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StreakMember carries per-user run stats inside a streak. CurrentRun and
// LongestRun are maintained by the background recompute worker.
type StreakMember struct {
	StreakID   string    `json:"streak_id" db:"streak_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	JoinedAt   time.Time `json:"joined_at" db:"joined_at"`
	CurrentRun int       `json:"current_run" db:"current_run"`
	LongestRun int       `json:"longest_run" db:"longest_run"`
}

func NewStreak(creatorID, name string) (*Streak, error) {
	if creatorID == "" {
		return nil, ErrStreakInvalidUser
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrStreakNameEmpty
	}
	if len(trimmed) > MaxTitleLen {
		return nil, ErrStreakNameTooLong
	}

	now := time.Now().UTC()

	return &Streak{
		ID:        uuid.New().String(),
		Name:      trimmed,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewStreakMember(streakID, userID string) *StreakMember {
	return &StreakMember{
		StreakID: streakID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	}
}
