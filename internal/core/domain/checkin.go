package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCheckInInvalidSubject = errors.New("check-in must reference exactly one goal or streak")
	ErrCheckInInvalidValue   = errors.New("check-in value cannot be negative")
	ErrCheckInInvalidDay     = errors.New("check-in day is required")
)

// CheckIn is one recorded activity for a single calendar day, against
// either a goal or a streak membership. ActivityDate is always midnight UTC.
type CheckIn struct {
	ID       string  `json:"id" db:"id"`
	UserID   string  `json:"user_id" db:"user_id"`
	GoalID   *string `json:"goal_id,omitempty" db:"goal_id"`
	StreakID *string `json:"streak_id,omitempty" db:"streak_id"`

	ActivityDate time.Time `json:"activity_date" db:"activity_date"`
	Done         bool      `json:"done" db:"done"`
	Value        float64   `json:"value" db:"value"`
	Note         string    `json:"note,omitempty" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewGoalCheckIn(goalID, userID string, day time.Time, done bool, value float64) *CheckIn {
	now := time.Now().UTC()

	return &CheckIn{
		UserID:       userID,
		GoalID:       &goalID,
		ActivityDate: Day(day),
		Done:         done,
		Value:        value,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewStreakCheckIn records streak participation. Streak check-ins carry no
// measured value, only the done flag counts toward shared runs.
func NewStreakCheckIn(streakID, userID string, day time.Time, done bool) *CheckIn {
	now := time.Now().UTC()

	return &CheckIn{
		UserID:       userID,
		StreakID:     &streakID,
		ActivityDate: Day(day),
		Done:         done,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *CheckIn) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}

	hasGoal := c.GoalID != nil && *c.GoalID != ""
	hasStreak := c.StreakID != nil && *c.StreakID != ""
	if hasGoal == hasStreak {
		return ErrCheckInInvalidSubject
	}

	if c.Value < 0 {
		return ErrCheckInInvalidValue
	}
	if c.ActivityDate.IsZero() {
		return ErrCheckInInvalidDay
	}
	return nil
}

// Active reports whether the record represents real activity: either the
// done flag was set or a positive value was logged.
func (c *CheckIn) Active() bool {
	return c.Done || c.Value > 0
}

// IsGoal reports whether the record belongs to a goal (as opposed to a streak).
func (c *CheckIn) IsGoal() bool {
	return c.GoalID != nil && *c.GoalID != ""
}
