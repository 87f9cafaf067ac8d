package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
	}
}

type CreateGoalInput struct {
	UserID      string
	Title       string
	Description string
	TargetType  string
	TargetValue float64
	Unit        string
	StartDate   time.Time
	EndDate     *time.Time
}

type UpdateGoalInput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Unit        string
	TargetValue float64
	EndDate     *time.Time
	Version     int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	targetType := input.TargetType
	if targetType == "" {
		targetType = domain.TargetDaily
	}

	goal, err := domain.NewGoal(
		input.UserID,
		input.Title,
		input.Description,
		targetType,
		input.Unit,
		input.TargetValue,
		input.StartDate,
		input.EndDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) GetByID(ctx context.Context, id string, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Ownership failures read as not found so goal ids cannot be probed.
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if goal.UserID != input.UserID {
		return nil, domain.ErrGoalNotFound
	}

	if input.Version > 0 && goal.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrGoalConflict, input.Version, goal.Version)
	}

	title := mergeString(input.Title, goal.Title)
	desc := mergeString(input.Description, goal.Description)
	unit := mergeString(input.Unit, goal.Unit)

	target := goal.TargetValue
	if input.TargetValue > 0 {
		target = input.TargetValue
	}

	endDate := goal.EndDate
	if input.EndDate != nil {
		endDate = input.EndDate
	}

	if err := goal.Update(title, desc, unit, target, endDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Archive(ctx context.Context, id string, userID string) error {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if goal.UserID != userID {
		return domain.ErrGoalNotFound
	}

	if goal.ArchivedAt != nil {
		return nil
	}

	return s.repo.Archive(ctx, id)
}
