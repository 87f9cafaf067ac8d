package repository

import (
	"context"
	"testing"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCheckInRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresCheckInRepository(db)
	goalRepo := NewPostgresGoalRepository(db)
	streakRepo := NewPostgresStreakRepository(db)
	ctx := context.Background()

	day := func(s string) time.Time {
		d, err := domain.ParseDay(s)
		require.NoError(t, err)
		return d
	}

	userID := "checkin-repo-user-1"

	goal, err := domain.NewGoal(userID, "Fixture Goal", "", domain.TargetCount, "km", 3, time.Time{}, nil)
	require.NoError(t, err)
	require.NoError(t, goalRepo.Create(ctx, goal))

	streak, err := domain.NewStreak(userID, "Fixture Streak")
	require.NoError(t, err)
	require.NoError(t, streakRepo.Create(ctx, streak))
	require.NoError(t, streakRepo.AddMember(ctx, domain.NewStreakMember(streak.ID, userID)))

	first := domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-01"), true, 5)

	t.Run("Create Check-In", func(t *testing.T) {
		err := repo.Create(ctx, first)
		assert.NoError(t, err)
		assert.NotEmpty(t, first.ID, "Repository must assign an id")
	})

	t.Run("Get By ID", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, first.ID)
		assert.NoError(t, err)
		assert.Equal(t, userID, fetched.UserID)
		require.NotNil(t, fetched.GoalID)
		assert.Equal(t, goal.ID, *fetched.GoalID)
		assert.Equal(t, "2024-03-01", fetched.ActivityDate.UTC().Format(domain.DayFormat))
	})

	t.Run("Duplicate Day Violation", func(t *testing.T) {
		dup := domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-01"), false, 1)
		err := repo.Create(ctx, dup)
		assert.Equal(t, domain.ErrCheckInConflict, err)
	})

	t.Run("Foreign Key Violation", func(t *testing.T) {
		orphan := domain.NewGoalCheckIn(uuid.New().String(), userID, day("2024-03-01"), true, 0)
		err := repo.Create(ctx, orphan)
		assert.Error(t, err)
		assert.NotEqual(t, domain.ErrCheckInConflict, err)
	})

	t.Run("Soft Delete Frees The Day", func(t *testing.T) {
		err := repo.Delete(ctx, first.ID, userID)
		assert.NoError(t, err)

		_, err = repo.GetByID(ctx, first.ID)
		assert.Equal(t, domain.ErrCheckInNotFound, err)

		var count int
		err = db.QueryRow("SELECT count(*) FROM check_ins WHERE id=$1 AND deleted_at IS NOT NULL", first.ID).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count, "The record must stay in the table after a soft delete")

		redo := domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-01"), true, 5)
		assert.NoError(t, repo.Create(ctx, redo))
	})

	t.Run("Security: Delete Requires Owner", func(t *testing.T) {
		mine := domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-02"), true, 0)
		require.NoError(t, repo.Create(ctx, mine))

		err := repo.Delete(ctx, mine.ID, "intruder")
		assert.Equal(t, domain.ErrCheckInNotFound, err)

		fetched, err := repo.GetByID(ctx, mine.ID)
		assert.NoError(t, err)
		assert.Nil(t, fetched.DeletedAt)
	})

	t.Run("List By Goal In Range", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-05"), true, 0)))
		require.NoError(t, repo.Create(ctx, domain.NewGoalCheckIn(goal.ID, userID, day("2024-03-10"), false, 2)))

		list, err := repo.ListByGoalID(ctx, goal.ID, day("2024-03-01"), day("2024-03-05"))
		assert.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "2024-03-01", list[0].ActivityDate.UTC().Format(domain.DayFormat))
		assert.Equal(t, "2024-03-05", list[2].ActivityDate.UTC().Format(domain.DayFormat))

		all, err := repo.ListAllByGoalID(ctx, goal.ID)
		assert.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("Streak Member Listing", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, domain.NewStreakCheckIn(streak.ID, userID, day("2024-03-03"), true)))
		require.NoError(t, repo.Create(ctx, domain.NewStreakCheckIn(streak.ID, userID, day("2024-03-04"), false)))

		list, err := repo.ListByStreakMember(ctx, streak.ID, userID, day("2024-03-03"), day("2024-03-03"))
		assert.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Done)

		all, err := repo.ListAllByStreakMember(ctx, streak.ID, userID)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("List By User Spans Goals And Streaks", func(t *testing.T) {
		list, err := repo.ListByUser(ctx, userID, day("2024-03-01"), day("2024-03-31"))
		assert.NoError(t, err)
		assert.Len(t, list, 6)
	})

	t.Run("Weekly Counts", func(t *testing.T) {
		goalCounts, err := repo.CountActiveGoalByUser(ctx, day("2024-03-04"), day("2024-03-10"))
		assert.NoError(t, err)
		assert.Equal(t, 2, goalCounts[userID], "Done on the 5th plus value on the 10th")

		streakCounts, err := repo.CountDoneStreakByUser(ctx, day("2024-03-04"), day("2024-03-10"))
		assert.NoError(t, err)
		_, present := streakCounts[userID]
		assert.False(t, present, "The not-done streak day on the 4th must not count")
	})
}
