package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	checkInsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insights_engine",
		Subsystem: "activity",
		Name:      "checkins_recorded_total",
		Help:      "Check-ins accepted, labelled by subject kind (goal or streak).",
	}, []string{"kind"})

	runRecomputes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insights_engine",
		Subsystem: "runs",
		Name:      "recomputes_total",
		Help:      "Run stat recomputations performed by the background worker.",
	}, []string{"kind"})

	rankingRecomputes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "insights_engine",
		Subsystem: "ranking",
		Name:      "recomputes_total",
		Help:      "Leaderboard recomputations performed.",
	})

	notificationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "insights_engine",
		Subsystem: "ranking",
		Name:      "notifications_sent_total",
		Help:      "Ranking notifications delivered to the notifier.",
	})

	notificationsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "insights_engine",
		Subsystem: "ranking",
		Name:      "notifications_failed_total",
		Help:      "Ranking notifications the notifier rejected.",
	})
)

func init() {
	prometheus.MustRegister(
		checkInsRecorded,
		runRecomputes,
		rankingRecomputes,
		notificationsSent,
		notificationsFailed,
	)
}

// RecordCheckIn counts one accepted check-in. Kind is "goal" or "streak".
func RecordCheckIn(kind string) {
	checkInsRecorded.WithLabelValues(kind).Inc()
}

// RecordRunRecompute counts one run stat recomputation. Kind is "goal" or "streak".
func RecordRunRecompute(kind string) {
	runRecomputes.WithLabelValues(kind).Inc()
}

// RecordRankingRecompute counts one full leaderboard rebuild.
func RecordRankingRecompute() {
	rankingRecomputes.Inc()
}

// RecordNotification counts one notification attempt by outcome.
func RecordNotification(err error) {
	if err != nil {
		notificationsFailed.Inc()
		return
	}
	notificationsSent.Inc()
}
