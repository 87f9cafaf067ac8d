package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date (must be YYYY-MM-DD or RFC3339)")
	ErrInvalidRange = errors.New("invalid date range (from is after to)")
)

const (
	DayFormat = "2006-01-02"

	// DefaultRangeDays is the lookback applied when a query omits both bounds.
	DefaultRangeDays = 30
)

// Day collapses a timestamp to its calendar day on the UTC clock.
// The result is always midnight UTC and applying Day twice is a no-op.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts a plain date (YYYY-MM-DD) or a full RFC3339 timestamp
// and normalizes the result via Day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayFormat, s); err == nil {
		return Day(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DateRange is an inclusive window of calendar days, both bounds
// normalized to midnight UTC.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Days returns the number of calendar days covered, bounds included.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.From) && !day.After(r.To)
}

func (r DateRange) String() string {
	return r.From.Format(DayFormat) + ".." + r.To.Format(DayFormat)
}

// ResolveRange builds the query window for analytics reads.
// A missing "to" defaults to today, a missing "from" to DefaultRangeDays
// days before the resolved "to".
func ResolveRange(fromStr, toStr string) (DateRange, error) {
	to := Day(time.Now())
	if toStr != "" {
		parsed, err := ParseDay(toStr)
		if err != nil {
			return DateRange{}, err
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -DefaultRangeDays)
	if fromStr != "" {
		parsed, err := ParseDay(fromStr)
		if err != nil {
			return DateRange{}, err
		}
		from = parsed
	}

	if from.After(to) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(DayFormat), to.Format(DayFormat))
	}

	return DateRange{From: from, To: to}, nil
}

// WeekRange returns the ISO week containing t, Monday through Sunday.
func WeekRange(t time.Time) DateRange {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	from := d.AddDate(0, 0, -offset)
	return DateRange{From: from, To: from.AddDate(0, 0, 6)}
}
