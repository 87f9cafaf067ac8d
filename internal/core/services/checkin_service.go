package services

import (
	"context"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/workers"
	"github.com/cadenceapp/cadence-insights-engine/internal/observability"
)

type CheckInService struct {
	repo       domain.CheckInRepository
	goalRepo   domain.GoalRepository
	streakRepo domain.StreakRepository
	worker     *workers.RunWorker
}

func NewCheckInService(repo domain.CheckInRepository, goalRepo domain.GoalRepository, streakRepo domain.StreakRepository, worker *workers.RunWorker) *CheckInService {
	return &CheckInService{
		repo:       repo,
		goalRepo:   goalRepo,
		streakRepo: streakRepo,
		worker:     worker,
	}
}

type LogGoalCheckInInput struct {
	GoalID string
	UserID string
	Day    time.Time
	Done   bool
	Value  float64
	Note   string
}

type LogStreakCheckInInput struct {
	StreakID string
	UserID   string
	Day      time.Time
	Done     bool
	Note     string
}

func (s *CheckInService) LogGoalCheckIn(ctx context.Context, input LogGoalCheckInInput) (*domain.CheckIn, error) {
	goal, err := s.goalRepo.GetByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}
	if goal.ArchivedAt != nil {
		return nil, domain.ErrGoalArchived
	}

	checkIn := domain.NewGoalCheckIn(input.GoalID, input.UserID, input.Day, input.Done, input.Value)
	checkIn.Note = input.Note

	if err := checkIn.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	observability.RecordCheckIn("goal")
	s.worker.EnqueueGoal(input.GoalID)

	return checkIn, nil
}

func (s *CheckInService) LogStreakCheckIn(ctx context.Context, input LogStreakCheckInInput) (*domain.CheckIn, error) {
	if _, err := s.streakRepo.GetMember(ctx, input.StreakID, input.UserID); err != nil {
		return nil, err
	}

	checkIn := domain.NewStreakCheckIn(input.StreakID, input.UserID, input.Day, input.Done)
	checkIn.Note = input.Note

	if err := checkIn.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	observability.RecordCheckIn("streak")
	s.worker.EnqueueStreak(input.StreakID, input.UserID)

	return checkIn, nil
}

func (s *CheckInService) GetByID(ctx context.Context, id string, userID string) (*domain.CheckIn, error) {
	checkIn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkIn.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return checkIn, nil
}

func (s *CheckInService) ListByGoalID(ctx context.Context, goalID string, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByGoalID(ctx, goalID, from, to)
}

func (s *CheckInService) Delete(ctx context.Context, id string, userID string) error {
	checkIn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if checkIn.UserID != userID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	// The subject's runs may have lost a day.
	if checkIn.IsGoal() {
		s.worker.EnqueueGoal(*checkIn.GoalID)
	} else if checkIn.StreakID != nil {
		s.worker.EnqueueStreak(*checkIn.StreakID, checkIn.UserID)
	}

	return nil
}
