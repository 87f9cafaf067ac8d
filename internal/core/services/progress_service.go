package services

import (
	"context"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type ProgressService struct {
	goalRepo    domain.GoalRepository
	checkInRepo domain.CheckInRepository
}

func NewProgressService(goalRepo domain.GoalRepository, checkInRepo domain.CheckInRepository) *ProgressService {
	return &ProgressService{
		goalRepo:    goalRepo,
		checkInRepo: checkInRepo,
	}
}

// GoalProgress computes one goal's progress over the range from its
// check-ins. The stored run columns ride along on the goal itself.
func (s *ProgressService) GoalProgress(ctx context.Context, goalID string, userID string, rng domain.DateRange) (*domain.GoalProgress, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	records, err := s.checkInRepo.ListByGoalID(ctx, goalID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	progress := domain.ComputeGoalProgress(goal, rng, records)
	return &progress, nil
}

// Heatmap renders the user's activity across every goal and streak as
// one cell per day in the range.
func (s *ProgressService) Heatmap(ctx context.Context, userID string, rng domain.DateRange) ([]domain.HeatmapCell, error) {
	records, err := s.checkInRepo.ListByUser(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	return domain.BuildHeatmap(records, rng), nil
}
