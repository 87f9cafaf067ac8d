package services

import (
	"context"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type StreakService struct {
	repo        domain.StreakRepository
	checkInRepo domain.CheckInRepository
}

func NewStreakService(repo domain.StreakRepository, checkInRepo domain.CheckInRepository) *StreakService {
	return &StreakService{
		repo:        repo,
		checkInRepo: checkInRepo,
	}
}

// MemberStats is one member's standing inside a streak, runs computed
// live from their check-in history.
type MemberStats struct {
	UserID   string          `json:"user_id"`
	JoinedAt string          `json:"joined_at"`
	Runs     domain.RunStats `json:"runs"`
}

func (s *StreakService) Create(ctx context.Context, creatorID, name string) (*domain.Streak, error) {
	streak, err := domain.NewStreak(creatorID, name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, streak); err != nil {
		return nil, err
	}

	// The creator participates from day one.
	member := domain.NewStreakMember(streak.ID, creatorID)
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return streak, nil
}

func (s *StreakService) GetByID(ctx context.Context, id string) (*domain.Streak, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StreakService) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *StreakService) Join(ctx context.Context, streakID, userID string) (*domain.StreakMember, error) {
	if _, err := s.repo.GetByID(ctx, streakID); err != nil {
		return nil, err
	}

	member := domain.NewStreakMember(streakID, userID)
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// Members lists a streak's roster. Only members may look at it.
func (s *StreakService) Members(ctx context.Context, streakID, viewerID string) ([]*domain.StreakMember, error) {
	if _, err := s.repo.GetMember(ctx, streakID, viewerID); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, streakID)
}

// MemberRunStats computes a member's runs from their full check-in
// history instead of trusting the stored columns. Done days only.
func (s *StreakService) MemberRunStats(ctx context.Context, streakID, viewerID, userID string) (*MemberStats, error) {
	if _, err := s.repo.GetMember(ctx, streakID, viewerID); err != nil {
		return nil, err
	}

	member, err := s.repo.GetMember(ctx, streakID, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.checkInRepo.ListAllByStreakMember(ctx, streakID, userID)
	if err != nil {
		return nil, err
	}

	return &MemberStats{
		UserID:   member.UserID,
		JoinedAt: member.JoinedAt.Format(domain.DayFormat),
		Runs:     domain.ComputeRunStats(domain.DoneDays(records)),
	}, nil
}
