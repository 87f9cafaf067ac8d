package services

import (
	"context"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type MetricsService struct {
	checkInRepo domain.CheckInRepository
}

func NewMetricsService(checkInRepo domain.CheckInRepository) *MetricsService {
	return &MetricsService{
		checkInRepo: checkInRepo,
	}
}

// ActivityBuckets groups the user's check-ins into day, ISO week or
// month slots, counted separately per source.
func (s *MetricsService) ActivityBuckets(ctx context.Context, userID string, granularity domain.Granularity, rng domain.DateRange) ([]domain.Bucket, error) {
	if !granularity.Valid() {
		return nil, domain.ErrInvalidGranularity
	}

	records, err := s.checkInRepo.ListByUser(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	var goalRecords, streakRecords []*domain.CheckIn
	for _, r := range records {
		if r.IsGoal() {
			goalRecords = append(goalRecords, r)
		} else {
			streakRecords = append(streakRecords, r)
		}
	}

	return domain.BuildBuckets(goalRecords, streakRecords, granularity), nil
}
