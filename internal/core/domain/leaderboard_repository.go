package domain

import "context"

type LeaderboardRepository interface {
	// ReplaceAll atomically swaps the stored board for a period: every
	// previous entry for that period is removed before the new entries
	// are inserted. Running it twice with the same input is a no-op.
	ReplaceAll(ctx context.Context, period string, entries []*LeaderboardEntry) error

	// ListByPeriod returns a period's entries ordered by score descending,
	// ties broken by user id ascending so reads are deterministic.
	ListByPeriod(ctx context.Context, period string) ([]*LeaderboardEntry, error)
}
