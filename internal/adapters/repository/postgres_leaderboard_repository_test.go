package repository

import (
	"context"
	"testing"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLeaderboardRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresLeaderboardRepository(db)
	ctx := context.Background()

	period := "2024-W10"
	now := time.Now().UTC()

	entries := []*domain.LeaderboardEntry{
		{Period: period, UserID: "board-user-b", Score: 7, ComputedAt: now},
		{Period: period, UserID: "board-user-a", Score: 7, ComputedAt: now},
		{Period: period, UserID: "board-user-c", Score: 12, ComputedAt: now},
	}

	t.Run("Replace And List", func(t *testing.T) {
		err := repo.ReplaceAll(ctx, period, entries)
		assert.NoError(t, err)

		board, err := repo.ListByPeriod(ctx, period)
		assert.NoError(t, err)
		require.Len(t, board, 3)

		assert.Equal(t, "board-user-c", board[0].UserID, "Highest score first")
		assert.Equal(t, "board-user-a", board[1].UserID, "Ties break on user id")
		assert.Equal(t, "board-user-b", board[2].UserID)
	})

	t.Run("Replace Swaps The Whole Board", func(t *testing.T) {
		fresh := []*domain.LeaderboardEntry{
			{Period: period, UserID: "board-user-z", Score: 1, ComputedAt: now},
		}
		err := repo.ReplaceAll(ctx, period, fresh)
		assert.NoError(t, err)

		board, err := repo.ListByPeriod(ctx, period)
		assert.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, "board-user-z", board[0].UserID)
	})

	t.Run("Replace With Empty Set Clears", func(t *testing.T) {
		err := repo.ReplaceAll(ctx, period, nil)
		assert.NoError(t, err)

		board, err := repo.ListByPeriod(ctx, period)
		assert.NoError(t, err)
		assert.Empty(t, board)
	})

	t.Run("Periods Stay Isolated", func(t *testing.T) {
		require.NoError(t, repo.ReplaceAll(ctx, "2024-W11", []*domain.LeaderboardEntry{
			{Period: "2024-W11", UserID: "board-user-a", Score: 3, ComputedAt: now},
		}))
		require.NoError(t, repo.ReplaceAll(ctx, "2024-W12", []*domain.LeaderboardEntry{
			{Period: "2024-W12", UserID: "board-user-a", Score: 9, ComputedAt: now},
		}))

		board, err := repo.ListByPeriod(ctx, "2024-W11")
		assert.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, 3, board[0].Score)
	})
}
