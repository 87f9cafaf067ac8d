package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

func testRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	rng, err := domain.ResolveRange(from, to)
	require.NoError(t, err)
	return rng
}

func TestProgressService_GoalProgress(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	gid := "goal-abc"

	t.Run("Success: Computes daily completion over the range", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewProgressService(goalRepo, checkInRepo)

		rng := testRange(t, "2024-03-01", "2024-03-10")
		start, _ := domain.ParseDay("2024-03-01")

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{
			ID: gid, UserID: uid, TargetType: domain.TargetDaily, TargetValue: 1, StartDate: start,
		}, nil)

		records := make([]*domain.CheckIn, 0, 5)
		for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-07", "2024-03-09"} {
			parsed, _ := domain.ParseDay(d)
			records = append(records, &domain.CheckIn{GoalID: &gid, UserID: uid, ActivityDate: parsed, Done: true})
		}
		checkInRepo.On("ListByGoalID", ctx, gid, rng.From, rng.To).Return(records, nil)

		progress, err := svc.GoalProgress(ctx, gid, uid, rng)

		require.NoError(t, err)
		assert.Equal(t, 5, progress.DoneDays)
		require.NotNil(t, progress.Completion)
		assert.InDelta(t, 0.5, *progress.Completion, 1e-9)
	})

	t.Run("Security: Should hide goals of other users behind NotFound", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewProgressService(goalRepo, checkInRepo)

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: "owner"}, nil)

		_, err := svc.GoalProgress(ctx, gid, "attacker", testRange(t, "2024-03-01", "2024-03-10"))

		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
		checkInRepo.AssertNotCalled(t, "ListByGoalID")
	})
}

func TestProgressService_Heatmap(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	gid := "goal-abc"
	sid := "streak-xyz"

	t.Run("Success: Mixes goal and streak activity into daily cells", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewProgressService(new(MockGoalRepo), checkInRepo)

		rng := testRange(t, "2024-03-01", "2024-03-03")
		d1, _ := domain.ParseDay("2024-03-01")
		d3, _ := domain.ParseDay("2024-03-03")

		checkInRepo.On("ListByUser", ctx, uid, rng.From, rng.To).Return([]*domain.CheckIn{
			{GoalID: &gid, UserID: uid, ActivityDate: d1, Done: true},
			{StreakID: &sid, UserID: uid, ActivityDate: d1, Done: true},
			{StreakID: &sid, UserID: uid, ActivityDate: d3, Done: false},
		}, nil)

		cells, err := svc.Heatmap(ctx, uid, rng)

		require.NoError(t, err)
		require.Len(t, cells, 3)
		assert.Equal(t, 2, cells[0].Count)
		assert.Equal(t, 4, cells[0].Intensity)
		assert.Zero(t, cells[1].Count)
		assert.Zero(t, cells[2].Count, "a not-done streak record is not activity")
	})

	t.Run("Edge Case: No activity still renders every day", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewProgressService(new(MockGoalRepo), checkInRepo)

		rng := testRange(t, "2024-03-01", "2024-03-05")
		checkInRepo.On("ListByUser", ctx, uid, rng.From, rng.To).Return([]*domain.CheckIn{}, nil)

		cells, err := svc.Heatmap(ctx, uid, rng)

		require.NoError(t, err)
		assert.Len(t, cells, 5)
		for _, c := range cells {
			assert.Zero(t, c.Intensity)
		}
	})
}
