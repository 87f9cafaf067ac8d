package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, g *domain.Goal) error {
	query := `
        INSERT INTO goals (
            id, user_id, title, description,
            target_type, target_value, unit,
            start_date, end_date,
            current_run, longest_run,
            version, archived_at, created_at, updated_at
        ) VALUES (
            :id, :user_id, :title, :description,
            :target_type, :target_value, :unit,
            :start_date, :end_date,
            0, 0,
            1, NULL, :created_at, :updated_at
        )`

	_, err := r.db.NamedExecContext(ctx, query, g)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	g.Version = 1
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var g domain.Goal
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &g, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}

	query := `
        SELECT * FROM goals
        WHERE user_id = $1
        ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, g *domain.Goal) error {
	query := `
        UPDATE goals SET
            title=$1, description=$2, unit=$3, target_value=$4,
            end_date=$5, archived_at=$6,
            updated_at=NOW(), version = version + 1
        WHERE id=$7 AND version=$8
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		g.Title, g.Description, g.Unit, g.TargetValue,
		g.EndDate, g.ArchivedAt,
		g.ID, g.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	err := row.Scan(&newVersion, &newUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existsQuery := `SELECT count(*) FROM goals WHERE id = $1`
			var count int
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, g.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrGoalNotFound
			}
			return domain.ErrGoalConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	g.Version = newVersion
	g.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresGoalRepository) Archive(ctx context.Context, id string) error {
	query := `
        UPDATE goals
        SET archived_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND archived_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var count int
		if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM goals WHERE id = $1`, id).Scan(&count); err != nil {
			return fmt.Errorf("existence check failed: %w", err)
		}
		if count == 0 {
			return domain.ErrGoalNotFound
		}
		// Already archived.
	}

	return nil
}

func (r *PostgresGoalRepository) UpdateRunStats(ctx context.Context, id string, current, longest int) error {
	// Derived columns written by the background worker. The user-facing
	// version is left alone so concurrent edits don't see phantom conflicts.
	query := `
        UPDATE goals
        SET current_run = $1, longest_run = $2, updated_at = NOW()
        WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, current, longest, id)
	if err != nil {
		return fmt.Errorf("run stats update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}
