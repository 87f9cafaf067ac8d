package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/cache"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	pass := os.Getenv("REDIS_PASSWORD")
	if pass == "" {
		pass = "secret_redis_pass_local"
	}

	rdb, err := cache.NewRedisClient(host, port, pass, 2)
	if err != nil {
		t.Skipf("Skipping cached repository tests: redis connection failed: %v", err)
	}
	return rdb
}

func TestCachedLeaderboardRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	next := NewInMemoryLeaderboardRepository()
	repo := NewCachedLeaderboardRepository(next, rdb)

	period := "2024-W20"
	now := time.Now().UTC()

	seed := []*domain.LeaderboardEntry{
		{Period: period, UserID: "cache-user-a", Score: 9, ComputedAt: now},
		{Period: period, UserID: "cache-user-b", Score: 4, ComputedAt: now},
	}
	require.NoError(t, repo.ReplaceAll(ctx, period, seed))

	t.Run("Miss Fills The Cache", func(t *testing.T) {
		board, err := repo.ListByPeriod(ctx, period)
		require.NoError(t, err)
		require.Len(t, board, 2)

		cached, err := rdb.Get(ctx, "leaderboard:"+period).Result()
		assert.NoError(t, err)
		assert.Contains(t, cached, "cache-user-a")
	})

	t.Run("Hit Skips The Store", func(t *testing.T) {
		// Mutate the backing store directly. A cached read must not see it.
		require.NoError(t, next.ReplaceAll(ctx, period, []*domain.LeaderboardEntry{
			{Period: period, UserID: "cache-user-z", Score: 1, ComputedAt: now},
		}))

		board, err := repo.ListByPeriod(ctx, period)
		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, "cache-user-a", board[0].UserID)
	})

	t.Run("Replace Invalidates", func(t *testing.T) {
		fresh := []*domain.LeaderboardEntry{
			{Period: period, UserID: "cache-user-c", Score: 2, ComputedAt: now},
		}
		require.NoError(t, repo.ReplaceAll(ctx, period, fresh))

		board, err := repo.ListByPeriod(ctx, period)
		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, "cache-user-c", board[0].UserID)
	})

	t.Run("Corrupted Payload Falls Back To The Store", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "leaderboard:"+period, "{not json", time.Minute).Err())

		board, err := repo.ListByPeriod(ctx, period)
		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, "cache-user-c", board[0].UserID)

		cached, err := rdb.Get(ctx, "leaderboard:"+period).Result()
		assert.NoError(t, err)
		assert.NotEqual(t, "{not json", cached, "The bad payload must be replaced")
	})
}
