package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

func TestNewGoalCheckIn(t *testing.T) {
	at := time.Date(2024, 3, 5, 18, 45, 12, 0, time.UTC)

	c := domain.NewGoalCheckIn("goal-1", "user-1", at, true, 3.5)

	require.NotNil(t, c.GoalID)
	assert.Equal(t, "goal-1", *c.GoalID)
	assert.Nil(t, c.StreakID)
	assert.Equal(t, day("2024-03-05"), c.ActivityDate)
	assert.True(t, c.Done)
	assert.Equal(t, 3.5, c.Value)
	assert.Equal(t, 1, c.Version)
	assert.NoError(t, c.Validate())
}

func TestNewStreakCheckIn(t *testing.T) {
	at := time.Date(2024, 3, 5, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))

	c := domain.NewStreakCheckIn("streak-1", "user-1", at, true)

	require.NotNil(t, c.StreakID)
	assert.Equal(t, "streak-1", *c.StreakID)
	assert.Nil(t, c.GoalID)
	assert.Equal(t, day("2024-03-06"), c.ActivityDate)
	assert.Zero(t, c.Value)
	assert.NoError(t, c.Validate())
}

func TestCheckIn_Validate(t *testing.T) {
	goalID := "goal-1"
	streakID := "streak-1"

	tests := []struct {
		name    string
		checkIn *domain.CheckIn
		wantErr error
	}{
		{
			name:    "Fail: Neither goal nor streak",
			checkIn: &domain.CheckIn{UserID: "user-1", ActivityDate: day("2024-03-05")},
			wantErr: domain.ErrCheckInInvalidSubject,
		},
		{
			name: "Fail: Both goal and streak",
			checkIn: &domain.CheckIn{
				UserID: "user-1", GoalID: &goalID, StreakID: &streakID,
				ActivityDate: day("2024-03-05"),
			},
			wantErr: domain.ErrCheckInInvalidSubject,
		},
		{
			name: "Fail: Negative value",
			checkIn: &domain.CheckIn{
				UserID: "user-1", GoalID: &goalID,
				ActivityDate: day("2024-03-05"), Value: -1,
			},
			wantErr: domain.ErrCheckInInvalidValue,
		},
		{
			name:    "Fail: Missing day",
			checkIn: &domain.CheckIn{UserID: "user-1", GoalID: &goalID},
			wantErr: domain.ErrCheckInInvalidDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.checkIn.Validate(), tt.wantErr)
		})
	}

	t.Run("Fail: Missing user", func(t *testing.T) {
		c := &domain.CheckIn{GoalID: &goalID, ActivityDate: day("2024-03-05")}
		assert.Error(t, c.Validate())
	})
}

func TestCheckIn_Active(t *testing.T) {
	tests := []struct {
		name  string
		done  bool
		value float64
		want  bool
	}{
		{"Done without value", true, 0, true},
		{"Value without done", false, 2, true},
		{"Done and value", true, 2, true},
		{"Neither", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CheckIn{Done: tt.done, Value: tt.value}
			assert.Equal(t, tt.want, c.Active())
		})
	}
}

func TestCheckIn_IsGoal(t *testing.T) {
	goalID := "goal-1"
	streakID := "streak-1"
	empty := ""

	assert.True(t, (&domain.CheckIn{GoalID: &goalID}).IsGoal())
	assert.False(t, (&domain.CheckIn{StreakID: &streakID}).IsGoal())
	assert.False(t, (&domain.CheckIn{GoalID: &empty}).IsGoal())
}
