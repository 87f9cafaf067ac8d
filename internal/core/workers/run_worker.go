package workers

import (
	"context"
	"log"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/observability"
)

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	UpdateRunStats(ctx context.Context, id string, current, longest int) error
}

type StreakRepository interface {
	GetMember(ctx context.Context, streakID, userID string) (*domain.StreakMember, error)
	UpdateMemberRunStats(ctx context.Context, streakID, userID string, current, longest int) error
}

type CheckInRepository interface {
	ListAllByGoalID(ctx context.Context, goalID string) ([]*domain.CheckIn, error)
	ListAllByStreakMember(ctx context.Context, streakID, userID string) ([]*domain.CheckIn, error)
}

// RunJob names one subject whose run stats need a recompute: either a goal
// or one member of a streak.
type RunJob struct {
	GoalID   string
	StreakID string
	UserID   string
}

type RunWorker struct {
	goalRepo    GoalRepository
	streakRepo  StreakRepository
	checkInRepo CheckInRepository
	jobs        chan RunJob
}

func NewRunWorker(gRepo GoalRepository, sRepo StreakRepository, cRepo CheckInRepository) *RunWorker {
	return &RunWorker{
		goalRepo:    gRepo,
		streakRepo:  sRepo,
		checkInRepo: cRepo,
		jobs:        make(chan RunJob, 100),
	}
}

func (w *RunWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Run Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Run Worker shutting down...")
				return
			}
		}
	}()
}

func (w *RunWorker) EnqueueGoal(goalID string) {
	w.enqueue(RunJob{GoalID: goalID})
}

func (w *RunWorker) EnqueueStreak(streakID, userID string) {
	w.enqueue(RunJob{StreakID: streakID, UserID: userID})
}

func (w *RunWorker) enqueue(job RunJob) {
	select {
	case w.jobs <- job:
	default:
		log.Printf("Run Worker queue full! Dropping job %+v", job)
	}
}

func (w *RunWorker) processJob(ctx context.Context, job RunJob) {
	if job.GoalID != "" {
		w.recomputeGoal(ctx, job.GoalID)
		return
	}
	w.recomputeMember(ctx, job.StreakID, job.UserID)
}

func (w *RunWorker) recomputeGoal(ctx context.Context, goalID string) {
	goal, err := w.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		log.Printf("Worker Error fetching goal %s: %v", goalID, err)
		return
	}

	records, err := w.checkInRepo.ListAllByGoalID(ctx, goalID)
	if err != nil {
		log.Printf("Worker Error fetching check-ins for goal %s: %v", goalID, err)
		return
	}

	stats := domain.ComputeRunStats(domain.ActiveDays(records))
	observability.RecordRunRecompute("goal")

	if goal.CurrentRun == stats.Current && goal.LongestRun == stats.Longest {
		return
	}

	if err := w.goalRepo.UpdateRunStats(ctx, goalID, stats.Current, stats.Longest); err != nil {
		log.Printf("Worker Failed to update runs for goal %s: %v", goalID, err)
		return
	}
	log.Printf("Runs updated for goal %s: Current=%d, Longest=%d", goalID, stats.Current, stats.Longest)
}

func (w *RunWorker) recomputeMember(ctx context.Context, streakID, userID string) {
	member, err := w.streakRepo.GetMember(ctx, streakID, userID)
	if err != nil {
		log.Printf("Worker Error fetching member %s of streak %s: %v", userID, streakID, err)
		return
	}

	records, err := w.checkInRepo.ListAllByStreakMember(ctx, streakID, userID)
	if err != nil {
		log.Printf("Worker Error fetching check-ins for streak %s: %v", streakID, err)
		return
	}

	// Shared streaks only count days explicitly marked done.
	stats := domain.ComputeRunStats(domain.DoneDays(records))
	observability.RecordRunRecompute("streak")

	if member.CurrentRun == stats.Current && member.LongestRun == stats.Longest {
		return
	}

	if err := w.streakRepo.UpdateMemberRunStats(ctx, streakID, userID, stats.Current, stats.Longest); err != nil {
		log.Printf("Worker Failed to update runs for streak %s member %s: %v", streakID, userID, err)
		return
	}
	log.Printf("Runs updated for streak %s member %s: Current=%d, Longest=%d", streakID, userID, stats.Current, stats.Longest)
}
