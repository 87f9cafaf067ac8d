package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type PostgresStreakRepository struct {
	db *sqlx.DB
}

func NewPostgresStreakRepository(db *sqlx.DB) *PostgresStreakRepository {
	return &PostgresStreakRepository{db: db}
}

func (r *PostgresStreakRepository) Create(ctx context.Context, streak *domain.Streak) error {
	query := `
		INSERT INTO streaks (id, name, creator_id, created_at, updated_at)
		VALUES (:id, :name, :creator_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, streak)
	if err != nil {
		return fmt.Errorf("failed to insert streak: %w", err)
	}
	return nil
}

func (r *PostgresStreakRepository) GetByID(ctx context.Context, id string) (*domain.Streak, error) {
	var streak domain.Streak
	query := `SELECT * FROM streaks WHERE id = $1`

	err := r.db.GetContext(ctx, &streak, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreakNotFound
		}
		return nil, err
	}
	return &streak, nil
}

func (r *PostgresStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	streaks := []*domain.Streak{}

	query := `
		SELECT s.* FROM streaks s
		JOIN streak_members m ON m.streak_id = s.id
		WHERE m.user_id = $1
		ORDER BY s.created_at DESC`

	err := r.db.SelectContext(ctx, &streaks, query, userID)
	if err != nil {
		return nil, err
	}
	return streaks, nil
}

func (r *PostgresStreakRepository) AddMember(ctx context.Context, member *domain.StreakMember) error {
	query := `
		INSERT INTO streak_members (streak_id, user_id, joined_at, current_run, longest_run)
		VALUES (:streak_id, :user_id, :joined_at, 0, 0)`

	_, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return domain.ErrStreakNotFound
			}
			if pqErr.Code == "23505" {
				return domain.ErrAlreadyMember
			}
		}
		return err
	}
	return nil
}

func (r *PostgresStreakRepository) GetMember(ctx context.Context, streakID, userID string) (*domain.StreakMember, error) {
	var member domain.StreakMember
	query := `SELECT * FROM streak_members WHERE streak_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &member, query, streakID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotMember
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresStreakRepository) ListMembers(ctx context.Context, streakID string) ([]*domain.StreakMember, error) {
	members := []*domain.StreakMember{}

	query := `
		SELECT * FROM streak_members
		WHERE streak_id = $1
		ORDER BY joined_at ASC`

	err := r.db.SelectContext(ctx, &members, query, streakID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresStreakRepository) UpdateMemberRunStats(ctx context.Context, streakID, userID string, current, longest int) error {
	query := `
		UPDATE streak_members
		SET current_run = $1, longest_run = $2
		WHERE streak_id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, current, longest, streakID, userID)
	if err != nil {
		return fmt.Errorf("member run stats update failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotMember
	}

	return nil
}
