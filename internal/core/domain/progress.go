package domain

import "time"

// GoalProgress summarizes activity against one goal within a query range.
// Completion is nil when the goal's kind has no computable completion
// (boolean goals, count goals without a positive target, degenerate windows).
type GoalProgress struct {
	GoalID string    `json:"goal_id"`
	Range  DateRange `json:"range"`

	TotalCheckIns int     `json:"total_check_ins"`
	DoneCount     int     `json:"done_count"`
	ValueSum      float64 `json:"value_sum"`
	DoneDays      int     `json:"done_days"`

	Completion *float64 `json:"completion,omitempty"`
}

// ComputeGoalProgress aggregates the goal's records over rng. It is a pure
// function: records are whatever the caller fetched for [rng.From, rng.To].
func ComputeGoalProgress(goal *Goal, rng DateRange, records []*CheckIn) GoalProgress {
	p := GoalProgress{
		GoalID: goal.ID,
		Range:  rng,
	}

	doneDays := make(map[string]bool)

	for _, r := range records {
		p.TotalCheckIns++
		if !r.Active() {
			continue
		}
		p.DoneCount++
		p.ValueSum += r.Value
		doneDays[r.ActivityDate.UTC().Format(DayFormat)] = true
	}
	p.DoneDays = len(doneDays)

	switch goal.TargetType {
	case TargetDaily:
		p.Completion = dailyCompletion(goal, rng, p.DoneDays)
	case TargetCount, TargetWeekly:
		if goal.TargetValue > 0 {
			ratio := p.ValueSum / goal.TargetValue
			if ratio > 1 {
				ratio = 1
			}
			p.Completion = &ratio
		}
	}

	return p
}

// dailyCompletion measures covered days against the goal's own window.
// An open-ended goal is measured up to the query range's upper bound.
func dailyCompletion(goal *Goal, rng DateRange, doneDays int) *float64 {
	end := rng.To
	if goal.EndDate != nil && goal.EndDate.Before(end) {
		end = *goal.EndDate
	}

	if end.Before(goal.StartDate) {
		return nil
	}

	totalDays := DateRange{From: goal.StartDate, To: end}.Days()
	if totalDays <= 0 {
		return nil
	}

	covered := doneDays
	if covered > totalDays {
		covered = totalDays
	}

	ratio := float64(covered) / float64(totalDays)
	return &ratio
}
