package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.LeaderboardRepository = (*CachedLeaderboardRepository)(nil)

// CachedLeaderboardRepository keeps the ordered board per period in
// redis. Boards only change on recompute, so writes invalidate and
// reads fill.
type CachedLeaderboardRepository struct {
	next  domain.LeaderboardRepository
	cache *redis.Client
}

func NewCachedLeaderboardRepository(next domain.LeaderboardRepository, cache *redis.Client) *CachedLeaderboardRepository {
	return &CachedLeaderboardRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedLeaderboardRepository) cacheKey(period string) string {
	return fmt.Sprintf("leaderboard:%s", period)
}

func (r *CachedLeaderboardRepository) invalidate(ctx context.Context, period string) {
	if err := r.cache.Del(ctx, r.cacheKey(period)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate leaderboard %s: %v", period, err)
	}
}

func (r *CachedLeaderboardRepository) ReplaceAll(ctx context.Context, period string, entries []*domain.LeaderboardEntry) error {
	if err := r.next.ReplaceAll(ctx, period, entries); err != nil {
		return err
	}
	r.invalidate(ctx, period)
	return nil
}

func (r *CachedLeaderboardRepository) ListByPeriod(ctx context.Context, period string) ([]*domain.LeaderboardEntry, error) {
	key := r.cacheKey(period)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var entries []*domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		log.Printf("[CACHE] Corrupted leaderboard data for %s, cleaning up key", period)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entries, err := r.next.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entries, nil
}
