package workers

import (
	"context"
	"log"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type Recomputer interface {
	Recompute(ctx context.Context, period string) (*domain.RankingResult, error)
}

// RankingWorker rebuilds the current ISO week's leaderboard on a timer
// and on demand.
type RankingWorker struct {
	recomputer Recomputer
	interval   time.Duration
	trigger    chan struct{}
}

func NewRankingWorker(recomputer Recomputer, interval time.Duration) *RankingWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RankingWorker{
		recomputer: recomputer,
		interval:   interval,
		trigger:    make(chan struct{}, 1),
	}
}

func (w *RankingWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Ranking Worker started in background...")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.recompute(ctx)
			case <-w.trigger:
				w.recompute(ctx)
			case <-ctx.Done():
				log.Println("Ranking Worker shutting down...")
				return
			}
		}
	}()
}

// TriggerNow schedules an immediate recompute without waiting for the
// next tick. Non-blocking, one pending trigger is enough.
func (w *RankingWorker) TriggerNow() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *RankingWorker) recompute(ctx context.Context) {
	period := domain.WeeklyPeriod(time.Now().UTC())

	result, err := w.recomputer.Recompute(ctx, period)
	if err != nil {
		log.Printf("Ranking Worker recompute failed for %s: %v", period, err)
		return
	}
	log.Printf("Ranking Worker recomputed %s: %d users ranked", result.Period, result.TotalUsers)
}
