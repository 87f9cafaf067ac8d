package domain

import (
	"sort"
	"time"
)

// RunStats describes consecutive-day activity over a day sequence.
// Current is the length of the run ending at the most recent active day,
// regardless of how long ago that day was.
type RunStats struct {
	Current     int `json:"current"`
	Longest     int `json:"longest"`
	TotalActive int `json:"total_active"`
}

// ComputeRunStats walks an ascending, de-duplicated sequence of calendar
// days in a single pass. Days must be normalized via Day; callers collapse
// raw records through DistinctDays first.
func ComputeRunStats(days []time.Time) RunStats {
	if len(days) == 0 {
		return RunStats{}
	}

	run := 1
	longest := 1

	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return RunStats{
		Current:     run,
		Longest:     longest,
		TotalActive: len(days),
	}
}

// DistinctDays collapses check-in records to their distinct calendar days
// in ascending order. Only records for which keep returns true count.
func DistinctDays(records []*CheckIn, keep func(*CheckIn) bool) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time

	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		key := r.ActivityDate.UTC().Format(DayFormat)
		if !seen[key] {
			seen[key] = true
			days = append(days, Day(r.ActivityDate))
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	return days
}

// ActiveDays is the goal-side day collapse: any record with real activity counts.
func ActiveDays(records []*CheckIn) []time.Time {
	return DistinctDays(records, func(c *CheckIn) bool { return c.Active() })
}

// DoneDays is the streak-side day collapse: only explicitly completed
// records extend a shared run.
func DoneDays(records []*CheckIn) []time.Time {
	return DistinctDays(records, func(c *CheckIn) bool { return c.Done })
}
