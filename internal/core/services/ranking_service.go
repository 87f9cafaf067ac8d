package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/observability"
)

type RankingService struct {
	checkInRepo     domain.CheckInRepository
	leaderboardRepo domain.LeaderboardRepository
	notifier        domain.Notifier
}

func NewRankingService(checkInRepo domain.CheckInRepository, leaderboardRepo domain.LeaderboardRepository, notifier domain.Notifier) *RankingService {
	return &RankingService{
		checkInRepo:     checkInRepo,
		leaderboardRepo: leaderboardRepo,
		notifier:        notifier,
	}
}

// Recompute rebuilds the board for one ISO week period, persists it as a
// full replacement and notifies every ranked user. Rerunning the same
// period is safe, the previous rows are swapped out.
func (s *RankingService) Recompute(ctx context.Context, period string) (*domain.RankingResult, error) {
	rng, err := domain.ParseWeekPeriod(period)
	if err != nil {
		return nil, err
	}

	goalCounts, err := s.checkInRepo.CountActiveGoalByUser(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	streakCounts, err := s.checkInRepo.CountDoneStreakByUser(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(goalCounts)+len(streakCounts))
	for userID, n := range goalCounts {
		scores[userID] += n
	}
	for userID, n := range streakCounts {
		scores[userID] += n
	}

	now := time.Now().UTC()
	entries := make([]*domain.LeaderboardEntry, 0, len(scores))
	for userID, score := range scores {
		if score <= 0 {
			continue
		}
		entries = append(entries, &domain.LeaderboardEntry{
			Period:     period,
			UserID:     userID,
			Score:      score,
			ComputedAt: now,
		})
	}

	if err := s.leaderboardRepo.ReplaceAll(ctx, period, entries); err != nil {
		return nil, err
	}

	result, err := s.readBoard(ctx, period, rng)
	if err != nil {
		return nil, err
	}

	observability.RecordRankingRecompute()
	s.dispatch(ctx, result)

	return result, nil
}

// Leaderboard returns the stored board for a period, ranks assigned by
// position in the ordered read.
func (s *RankingService) Leaderboard(ctx context.Context, period string) (*domain.RankingResult, error) {
	rng, err := domain.ParseWeekPeriod(period)
	if err != nil {
		return nil, err
	}

	return s.readBoard(ctx, period, rng)
}

func (s *RankingService) readBoard(ctx context.Context, period string, rng domain.DateRange) (*domain.RankingResult, error) {
	ranked, err := s.leaderboardRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	for i, e := range ranked {
		e.Rank = i + 1
	}

	return &domain.RankingResult{
		Period:     period,
		Range:      rng,
		TotalUsers: len(ranked),
		Rankings:   ranked,
	}, nil
}

// dispatch fans one notification out per ranked user. Failures are
// logged and counted, they never fail the recompute.
func (s *RankingService) dispatch(ctx context.Context, result *domain.RankingResult) {
	if s.notifier == nil {
		return
	}

	var wg sync.WaitGroup
	for _, entry := range result.Rankings {
		wg.Add(1)
		go func(e *domain.LeaderboardEntry) {
			defer wg.Done()

			err := s.notifier.Notify(ctx, domain.NotificationFor(e, result.TotalUsers))
			observability.RecordNotification(err)
			if err != nil {
				log.Printf("Ranking notification failed for user %s (period %s): %v", e.UserID, result.Period, err)
			}
		}(entry)
	}
	wg.Wait()
}
