package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrInvalidGranularity = errors.New("invalid granularity (must be day, week, or month)")

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// Bucket is one time slot of aggregated activity. Keys sort
// chronologically as plain strings for every granularity.
type Bucket struct {
	Key         string `json:"key"`
	GoalCount   int    `json:"goal_count"`
	StreakCount int    `json:"streak_count"`
	Total       int    `json:"total"`
}

// BucketKey renders the slot a day falls into: "2006-01-02" for days,
// "2006-01" for months and ISO-8601 "YYYY-Www" for weeks.
func BucketKey(day time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		year, week := day.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonth:
		return day.Format("2006-01")
	default:
		return day.Format(DayFormat)
	}
}

// BuildBuckets aggregates goal and streak check-ins into time slots.
// Goal records count whenever they carry real activity, streak records
// only when explicitly done. Buckets are created lazily and returned in
// ascending key order.
func BuildBuckets(goalRecords, streakRecords []*CheckIn, g Granularity) []Bucket {
	acc := make(map[string]*Bucket)

	slot := func(day time.Time) *Bucket {
		key := BucketKey(day, g)
		b, ok := acc[key]
		if !ok {
			b = &Bucket{Key: key}
			acc[key] = b
		}
		return b
	}

	for _, r := range goalRecords {
		if !r.Active() {
			continue
		}
		b := slot(r.ActivityDate)
		b.GoalCount++
		b.Total++
	}

	for _, r := range streakRecords {
		if !r.Done {
			continue
		}
		b := slot(r.ActivityDate)
		b.StreakCount++
		b.Total++
	}

	keys := make([]string, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *acc[k])
	}
	return out
}

// HeatmapCell is one day on the activity heatmap. Intensity buckets the
// count into 0-4 relative to the busiest day of the range.
type HeatmapCell struct {
	Day       string `json:"day"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
}

// BuildHeatmap produces one cell per calendar day of rng, empty days
// included, counting records with real activity.
func BuildHeatmap(records []*CheckIn, rng DateRange) []HeatmapCell {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.Active() {
			continue
		}
		counts[r.ActivityDate.UTC().Format(DayFormat)]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	cells := make([]HeatmapCell, 0, rng.Days())
	for day := rng.From; !day.After(rng.To); day = day.AddDate(0, 0, 1) {
		key := day.Format(DayFormat)
		count := counts[key]

		intensity := 0
		if count > 0 {
			// Ceil of count/max scaled to 4 steps.
			intensity = (count*4 + maxCount - 1) / maxCount
			if intensity > 4 {
				intensity = 4
			}
		}

		cells = append(cells, HeatmapCell{Day: key, Count: count, Intensity: intensity})
	}

	return cells
}
