package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type PostgresLeaderboardRepository struct {
	db *sqlx.DB
}

func NewPostgresLeaderboardRepository(db *sqlx.DB) *PostgresLeaderboardRepository {
	return &PostgresLeaderboardRepository{db: db}
}

// ReplaceAll swaps a period's rows atomically so a recompute never
// leaves a half-written board behind.
func (r *PostgresLeaderboardRepository) ReplaceAll(ctx context.Context, period string, entries []*domain.LeaderboardEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin leaderboard swap: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard_entries WHERE period = $1`, period); err != nil {
		return fmt.Errorf("failed to clear period %s: %w", period, err)
	}

	if len(entries) > 0 {
		query := `
			INSERT INTO leaderboard_entries (period, user_id, score, computed_at)
			VALUES (:period, :user_id, :score, :computed_at)`

		if _, err := tx.NamedExecContext(ctx, query, entries); err != nil {
			return fmt.Errorf("failed to insert leaderboard rows: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresLeaderboardRepository) ListByPeriod(ctx context.Context, period string) ([]*domain.LeaderboardEntry, error) {
	entries := []*domain.LeaderboardEntry{}

	query := `
		SELECT * FROM leaderboard_entries
		WHERE period = $1
		ORDER BY score DESC, user_id ASC`

	err := r.db.SelectContext(ctx, &entries, query, period)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
