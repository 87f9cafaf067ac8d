package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

func (r *PostgresCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}

	query := `
		INSERT INTO check_ins (
			id, user_id, goal_id, streak_id,
			activity_date, done, value, note,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :goal_id, :streak_id,
			:activity_date, :done, :value, :note,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, checkIn)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced goal or streak does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrCheckInConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	query := `SELECT * FROM check_ins WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &checkIn, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *PostgresCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE check_ins
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security Check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCheckInNotFound
	}

	return nil
}

func (r *PostgresCheckInRepository) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE goal_id = $1
		  AND activity_date >= $2
		  AND activity_date <= $3
		  AND deleted_at IS NULL
		ORDER BY activity_date ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, goalID, from, to)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) ListAllByGoalID(ctx context.Context, goalID string) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE goal_id = $1
		  AND deleted_at IS NULL
		ORDER BY activity_date ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, goalID)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) ListByStreakMember(ctx context.Context, streakID, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE streak_id = $1
		  AND user_id = $2
		  AND activity_date >= $3
		  AND activity_date <= $4
		  AND deleted_at IS NULL
		ORDER BY activity_date ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, streakID, userID, from, to)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) ListAllByStreakMember(ctx context.Context, streakID, userID string) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE streak_id = $1
		  AND user_id = $2
		  AND deleted_at IS NULL
		ORDER BY activity_date ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, streakID, userID)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *PostgresCheckInRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	checkIns := []*domain.CheckIn{}

	query := `
		SELECT * FROM check_ins
		WHERE user_id = $1
		  AND activity_date >= $2
		  AND activity_date <= $3
		  AND deleted_at IS NULL
		ORDER BY activity_date ASC`

	err := r.db.SelectContext(ctx, &checkIns, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

type userCount struct {
	UserID string `db:"user_id"`
	Count  int    `db:"count"`
}

func (r *PostgresCheckInRepository) CountActiveGoalByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows := []userCount{}

	query := `
		SELECT user_id, count(*) AS count FROM check_ins
		WHERE goal_id IS NOT NULL
		  AND activity_date >= $1
		  AND activity_date <= $2
		  AND deleted_at IS NULL
		  AND (done = TRUE OR value > 0)
		GROUP BY user_id`

	err := r.db.SelectContext(ctx, &rows, query, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func (r *PostgresCheckInRepository) CountDoneStreakByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows := []userCount{}

	query := `
		SELECT user_id, count(*) AS count FROM check_ins
		WHERE streak_id IS NOT NULL
		  AND activity_date >= $1
		  AND activity_date <= $2
		  AND deleted_at IS NULL
		  AND done = TRUE
		GROUP BY user_id`

	err := r.db.SelectContext(ctx, &rows, query, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
