package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrGoalTitleTooLong  = errors.New("goal title is too long (max 100 chars)")
	ErrGoalInvalidUserID = errors.New("invalid user id")
	ErrInvalidTargetType = errors.New("invalid target type (must be daily, boolean, count, or weekly)")
	ErrInvalidTarget     = errors.New("target value must be at least 1 for count and weekly goals")
	ErrInvalidGoalWindow = errors.New("goal end date cannot be before start date")
	ErrGoalArchived      = errors.New("cannot update an archived goal")
	ErrUnauthorized      = errors.New("unauthorized access to resource")
)

const (
	TargetDaily   = "daily"
	TargetBoolean = "boolean"
	TargetCount   = "count"
	TargetWeekly  = "weekly"

	MaxTitleLen = 100
)

type Goal struct {
	ID          string  `json:"id" db:"id"`
	UserID      string  `json:"user_id" db:"user_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description,omitempty" db:"description"`
	TargetType  string  `json:"target_type" db:"target_type"`
	TargetValue float64 `json:"target_value" db:"target_value"`
	Unit        string  `json:"unit,omitempty" db:"unit"`

	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`

	CurrentRun int `json:"current_run" db:"current_run"`
	LongestRun int `json:"longest_run" db:"longest_run"`

	Version    int        `json:"version" db:"version"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" db:"archived_at"`
}

func validateGoal(title, targetType string, target float64) (float64, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return 0, ErrGoalTitleEmpty
	}
	if len(trimmed) > MaxTitleLen {
		return 0, ErrGoalTitleTooLong
	}

	switch targetType {
	case TargetDaily, TargetBoolean:
		// Completion for these kinds is day-driven, the stored target is nominal.
		return 1, nil
	case TargetCount, TargetWeekly:
		if target < 1 {
			return 0, ErrInvalidTarget
		}
		return target, nil
	default:
		return 0, ErrInvalidTargetType
	}
}

func NewGoal(userID, title, description, targetType, unit string, target float64, startDate time.Time, endDate *time.Time) (*Goal, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}

	safeTarget, err := validateGoal(title, targetType, target)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	start := Day(startDate)
	if startDate.IsZero() {
		start = Day(now)
	}

	var end *time.Time
	if endDate != nil {
		e := Day(*endDate)
		if e.Before(start) {
			return nil, ErrInvalidGoalWindow
		}
		end = &e
	}

	return &Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		TargetType:  targetType,
		TargetValue: safeTarget,
		Unit:        unit,
		StartDate:   start,
		EndDate:     end,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Goal) Update(title, description, unit string, target float64, endDate *time.Time) error {
	if g.ArchivedAt != nil {
		return ErrGoalArchived
	}

	safeTarget, err := validateGoal(title, g.TargetType, target)
	if err != nil {
		return err
	}

	var end *time.Time
	if endDate != nil {
		e := Day(*endDate)
		if e.Before(g.StartDate) {
			return ErrInvalidGoalWindow
		}
		end = &e
	}

	g.Title = strings.TrimSpace(title)
	g.Description = strings.TrimSpace(description)
	g.Unit = unit
	g.TargetValue = safeTarget
	g.EndDate = end
	g.UpdatedAt = time.Now().UTC()

	return nil
}

func (g *Goal) UpdateRunStats(current, longest int) {
	g.CurrentRun = current
	g.LongestRun = longest
	g.UpdatedAt = time.Now().UTC()
}

func (g *Goal) Archive() {
	if g.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	g.ArchivedAt = &now
	g.UpdatedAt = now
}

func (g *Goal) Restore() {
	if g.ArchivedAt == nil {
		return
	}
	g.ArchivedAt = nil
	g.UpdatedAt = time.Now().UTC()
}
