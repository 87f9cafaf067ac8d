package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid leaderboard period (must be YYYY-Www)")

// LeaderboardEntry is one user's standing for a period. Rank is assigned
// positionally when the board is read back, it is not stored.
type LeaderboardEntry struct {
	Period     string    `json:"period" db:"period"`
	UserID     string    `json:"user_id" db:"user_id"`
	Score      int       `json:"score" db:"score"`
	Rank       int       `json:"rank" db:"-"`
	ComputedAt time.Time `json:"computed_at" db:"computed_at"`
}

type RankingResult struct {
	Period     string              `json:"period"`
	Range      DateRange           `json:"range"`
	TotalUsers int                 `json:"total_users"`
	Rankings   []*LeaderboardEntry `json:"rankings"`
}

const (
	NotificationTop3   = "TOP3"
	NotificationResult = "RESULT"
)

// Notification tells one user where they landed on a freshly computed board.
type Notification struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id"`
	Period     string `json:"period"`
	Rank       int    `json:"rank"`
	Score      int    `json:"score"`
	TotalUsers int    `json:"total_users"`
}

// NotificationFor picks the kind by rank: the podium gets TOP3, everyone
// else a plain RESULT.
func NotificationFor(e *LeaderboardEntry, totalUsers int) Notification {
	kind := NotificationResult
	if e.Rank <= 3 {
		kind = NotificationTop3
	}
	return Notification{
		Kind:       kind,
		UserID:     e.UserID,
		Period:     e.Period,
		Rank:       e.Rank,
		Score:      e.Score,
		TotalUsers: totalUsers,
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// WeeklyPeriod is the leaderboard period id for the ISO week containing t.
func WeeklyPeriod(t time.Time) string {
	return BucketKey(Day(t), GranularityWeek)
}

// ParseWeekPeriod resolves a "YYYY-Www" period id back to its Monday-Sunday
// range. Period ids that name a week the year does not have are rejected.
func ParseWeekPeriod(period string) (DateRange, error) {
	var year, week int
	if _, err := fmt.Sscanf(period, "%4d-W%2d", &year, &week); err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	if week < 1 || week > 53 {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	// January 4th is always inside ISO week 1 of its year.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1 := WeekRange(jan4)
	monday := week1.From.AddDate(0, 0, (week-1)*7)

	if WeeklyPeriod(monday) != period {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}, nil
}
