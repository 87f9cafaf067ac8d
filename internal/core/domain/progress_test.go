package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

func rangeOf(from, to string) domain.DateRange {
	return domain.DateRange{From: day(from), To: day(to)}
}

func goalCheckIn(goalID, d string, done bool, value float64) *domain.CheckIn {
	return &domain.CheckIn{GoalID: &goalID, ActivityDate: day(d), Done: done, Value: value}
}

func TestComputeGoalProgress_Daily(t *testing.T) {
	newDailyGoal := func(start, end string) *domain.Goal {
		g := &domain.Goal{ID: "goal-1", TargetType: domain.TargetDaily, StartDate: day(start)}
		if end != "" {
			e := day(end)
			g.EndDate = &e
		}
		return g
	}

	t.Run("Success: 7 distinct done days over a 10 day window", func(t *testing.T) {
		goal := newDailyGoal("2024-01-01", "2024-01-10")
		rng := rangeOf("2024-01-01", "2024-01-10")

		var records []*domain.CheckIn
		for i := 0; i < 7; i++ {
			records = append(records, goalCheckIn(goal.ID, day("2024-01-01").AddDate(0, 0, i).Format(domain.DayFormat), true, 0))
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 0.7, *p.Completion, 1e-9)
		assert.Equal(t, 7, p.DoneDays)
		assert.Equal(t, 7, p.DoneCount)
	})

	t.Run("Success: Duplicate records on one day count a single done day", func(t *testing.T) {
		goal := newDailyGoal("2024-01-01", "2024-01-02")
		rng := rangeOf("2024-01-01", "2024-01-02")

		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", true, 0),
			goalCheckIn(goal.ID, "2024-01-01", true, 0),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 0.5, *p.Completion, 1e-9)
		assert.Equal(t, 1, p.DoneDays)
		assert.Equal(t, 2, p.DoneCount)
	})

	t.Run("Success: Open-ended goal is measured up to the range end", func(t *testing.T) {
		goal := newDailyGoal("2024-01-01", "")
		rng := rangeOf("2024-01-01", "2024-01-04")

		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", true, 0),
			goalCheckIn(goal.ID, "2024-01-02", true, 0),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 0.5, *p.Completion, 1e-9)
	})

	t.Run("Edge Case: Degenerate window yields nil completion", func(t *testing.T) {
		goal := newDailyGoal("2024-06-01", "")
		rng := rangeOf("2024-01-01", "2024-01-31")

		p := domain.ComputeGoalProgress(goal, rng, nil)

		assert.Nil(t, p.Completion)
	})

	t.Run("Edge Case: Done days never push completion above 1", func(t *testing.T) {
		goal := newDailyGoal("2024-01-03", "2024-01-04")
		rng := rangeOf("2024-01-01", "2024-01-10")

		var records []*domain.CheckIn
		for i := 0; i < 6; i++ {
			records = append(records, goalCheckIn(goal.ID, day("2024-01-01").AddDate(0, 0, i).Format(domain.DayFormat), true, 0))
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 1.0, *p.Completion, 1e-9)
	})
}

func TestComputeGoalProgress_CountAndWeekly(t *testing.T) {
	rng := rangeOf("2024-01-01", "2024-01-31")

	t.Run("Success: Value sum against target", func(t *testing.T) {
		goal := &domain.Goal{ID: "goal-1", TargetType: domain.TargetCount, TargetValue: 20}
		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", false, 8),
			goalCheckIn(goal.ID, "2024-01-02", false, 2),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 0.5, *p.Completion, 1e-9)
		assert.InDelta(t, 10, p.ValueSum, 1e-9)
	})

	t.Run("Success: Completion is capped at 1", func(t *testing.T) {
		goal := &domain.Goal{ID: "goal-1", TargetType: domain.TargetCount, TargetValue: 20}
		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", false, 25),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 1.0, *p.Completion, 1e-9)
	})

	t.Run("Success: Weekly goals follow the same formula", func(t *testing.T) {
		goal := &domain.Goal{ID: "goal-1", TargetType: domain.TargetWeekly, TargetValue: 10}
		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", false, 4),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		require.NotNil(t, p.Completion)
		assert.InDelta(t, 0.4, *p.Completion, 1e-9)
	})

	t.Run("Edge Case: Non-positive target yields nil completion", func(t *testing.T) {
		goal := &domain.Goal{ID: "goal-1", TargetType: domain.TargetCount, TargetValue: 0}
		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", false, 25),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		assert.Nil(t, p.Completion)
		assert.InDelta(t, 25, p.ValueSum, 1e-9)
	})
}

func TestComputeGoalProgress_Boolean(t *testing.T) {
	t.Run("Boolean goals never report completion", func(t *testing.T) {
		goal := &domain.Goal{ID: "goal-1", TargetType: domain.TargetBoolean, TargetValue: 1}
		rng := rangeOf("2024-01-01", "2024-01-31")
		records := []*domain.CheckIn{
			goalCheckIn(goal.ID, "2024-01-01", true, 0),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		assert.Nil(t, p.Completion)
		assert.Equal(t, 1, p.DoneCount)
	})
}

func TestComputeGoalProgress_Counting(t *testing.T) {
	goalID := "goal-1"
	rng := rangeOf("2024-01-01", "2024-01-31")
	goal := &domain.Goal{ID: goalID, TargetType: domain.TargetCount, TargetValue: 100}

	t.Run("Inactive records count toward totals only", func(t *testing.T) {
		records := []*domain.CheckIn{
			goalCheckIn(goalID, "2024-01-01", true, 0),
			goalCheckIn(goalID, "2024-01-02", false, 3),
			goalCheckIn(goalID, "2024-01-03", false, 0),
		}

		p := domain.ComputeGoalProgress(goal, rng, records)

		assert.Equal(t, 3, p.TotalCheckIns)
		assert.Equal(t, 2, p.DoneCount)
		assert.Equal(t, 2, p.DoneDays)
		assert.InDelta(t, 3, p.ValueSum, 1e-9)
	})

	t.Run("Edge Case: No records at all", func(t *testing.T) {
		p := domain.ComputeGoalProgress(goal, rng, nil)

		assert.Equal(t, 0, p.TotalCheckIns)
		assert.Equal(t, 0, p.DoneCount)
		assert.Zero(t, p.ValueSum)
		require.NotNil(t, p.Completion)
		assert.Zero(t, *p.Completion)
	})
}
