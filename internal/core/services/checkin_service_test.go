package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/workers"
)

type MockCheckInRepo struct {
	mock.Mock
}

func (m *MockCheckInRepo) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	return m.Called(ctx, checkIn).Error(0)
}

func (m *MockCheckInRepo) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockCheckInRepo) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, goalID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) ListAllByGoalID(ctx context.Context, goalID string) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) ListByStreakMember(ctx context.Context, streakID, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, streakID, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) ListAllByStreakMember(ctx context.Context, streakID, userID string) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, streakID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepo) CountActiveGoalByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCheckInRepo) CountDoneStreakByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepo) Archive(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalRepo) UpdateRunStats(ctx context.Context, id string, current, longest int) error {
	return m.Called(ctx, id, current, longest).Error(0)
}

type MockStreakRepo struct {
	mock.Mock
}

func (m *MockStreakRepo) Create(ctx context.Context, streak *domain.Streak) error {
	return m.Called(ctx, streak).Error(0)
}

func (m *MockStreakRepo) GetByID(ctx context.Context, id string) (*domain.Streak, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockStreakRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Streak), args.Error(1)
}

func (m *MockStreakRepo) AddMember(ctx context.Context, member *domain.StreakMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockStreakRepo) GetMember(ctx context.Context, streakID, userID string) (*domain.StreakMember, error) {
	args := m.Called(ctx, streakID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakMember), args.Error(1)
}

func (m *MockStreakRepo) ListMembers(ctx context.Context, streakID string) ([]*domain.StreakMember, error) {
	args := m.Called(ctx, streakID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StreakMember), args.Error(1)
}

func (m *MockStreakRepo) UpdateMemberRunStats(ctx context.Context, streakID, userID string, current, longest int) error {
	return m.Called(ctx, streakID, userID, current, longest).Error(0)
}

func getTestWorker() *workers.RunWorker {
	return workers.NewRunWorker(nil, nil, nil)
}

func TestCheckInService_LogGoalCheckIn(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	gid := "goal-abc"
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Should validate ownership, create check-in", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: uid}, nil)
		checkInRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.CheckIn) bool {
			return c.GoalID != nil && *c.GoalID == gid && c.Value == 2.5 && c.ActivityDate.Equal(day)
		})).Return(nil)

		created, err := svc.LogGoalCheckIn(ctx, services.LogGoalCheckInInput{
			GoalID: gid,
			UserID: uid,
			Day:    day.Add(16 * time.Hour),
			Done:   true,
			Value:  2.5,
		})

		require.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.Done)

		checkInRepo.AssertExpectations(t)
	})

	t.Run("Security: Should fail if goal belongs to another user (IDOR)", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: "victim"}, nil)

		created, err := svc.LogGoalCheckIn(ctx, services.LogGoalCheckInInput{
			GoalID: gid, UserID: "attacker", Day: day, Done: true,
		})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, created)
		checkInRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should reject check-ins against an archived goal", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		archivedAt := time.Now().UTC()
		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: uid, ArchivedAt: &archivedAt}, nil)

		_, err := svc.LogGoalCheckIn(ctx, services.LogGoalCheckInInput{
			GoalID: gid, UserID: uid, Day: day, Done: true,
		})

		assert.ErrorIs(t, err, domain.ErrGoalArchived)
		checkInRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should surface day conflicts from the store", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: uid}, nil)
		checkInRepo.On("Create", ctx, mock.Anything).Return(domain.ErrCheckInConflict)

		_, err := svc.LogGoalCheckIn(ctx, services.LogGoalCheckInInput{
			GoalID: gid, UserID: uid, Day: day, Done: true,
		})

		assert.ErrorIs(t, err, domain.ErrCheckInConflict)
	})

	t.Run("Fail: Should fail if goal does not exist", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(nil, domain.ErrGoalNotFound)

		_, err := svc.LogGoalCheckIn(ctx, services.LogGoalCheckInInput{
			GoalID: gid, UserID: uid, Day: day, Done: true,
		})

		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}

func TestCheckInService_LogStreakCheckIn(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	sid := "streak-abc"
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Should create check-in for a member", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		streakRepo := new(MockStreakRepo)
		svc := services.NewCheckInService(checkInRepo, new(MockGoalRepo), streakRepo, getTestWorker())

		streakRepo.On("GetMember", ctx, sid, uid).Return(&domain.StreakMember{StreakID: sid, UserID: uid}, nil)
		checkInRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.CheckIn) bool {
			return c.StreakID != nil && *c.StreakID == sid && c.Done && c.Value == 0
		})).Return(nil)

		created, err := svc.LogStreakCheckIn(ctx, services.LogStreakCheckInInput{
			StreakID: sid, UserID: uid, Day: day, Done: true,
		})

		require.NoError(t, err)
		assert.NotNil(t, created)
		checkInRepo.AssertExpectations(t)
	})

	t.Run("Security: Should fail for non-members", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		streakRepo := new(MockStreakRepo)
		svc := services.NewCheckInService(checkInRepo, new(MockGoalRepo), streakRepo, getTestWorker())

		streakRepo.On("GetMember", ctx, sid, uid).Return(nil, domain.ErrNotMember)

		_, err := svc.LogStreakCheckIn(ctx, services.LogStreakCheckInInput{
			StreakID: sid, UserID: uid, Day: day, Done: true,
		})

		assert.ErrorIs(t, err, domain.ErrNotMember)
		checkInRepo.AssertNotCalled(t, "Create")
	})
}

func TestCheckInService_Delete(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	id := "checkin-del"
	gid := "goal-abc"

	t.Run("Success: Should delete owned check-in", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewCheckInService(checkInRepo, new(MockGoalRepo), new(MockStreakRepo), getTestWorker())

		checkInRepo.On("GetByID", ctx, id).Return(&domain.CheckIn{ID: id, UserID: uid, GoalID: &gid}, nil)
		checkInRepo.On("Delete", ctx, id, uid).Return(nil)

		err := svc.Delete(ctx, id, uid)

		assert.NoError(t, err)
		checkInRepo.AssertExpectations(t)
	})

	t.Run("Security: Should return Unauthorized if user mismatch", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewCheckInService(checkInRepo, new(MockGoalRepo), new(MockStreakRepo), getTestWorker())

		checkInRepo.On("GetByID", ctx, id).Return(&domain.CheckIn{ID: id, UserID: "owner", GoalID: &gid}, nil)

		err := svc.Delete(ctx, id, "attacker")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		checkInRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Fail: Should return NotFound if check-in doesn't exist", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		svc := services.NewCheckInService(checkInRepo, new(MockGoalRepo), new(MockStreakRepo), getTestWorker())

		checkInRepo.On("GetByID", ctx, id).Return(nil, domain.ErrCheckInNotFound)

		err := svc.Delete(ctx, id, uid)

		assert.ErrorIs(t, err, domain.ErrCheckInNotFound)
	})
}

func TestCheckInService_ListByGoalID(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	gid := "goal-abc"
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Success: Should list check-ins for an owned goal", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: uid}, nil)
		checkInRepo.On("ListByGoalID", ctx, gid, from, to).Return([]*domain.CheckIn{{ID: "1"}, {ID: "2"}}, nil)

		list, err := svc.ListByGoalID(ctx, gid, uid, from, to)

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Security: Should prevent listing another user's goal", func(t *testing.T) {
		checkInRepo := new(MockCheckInRepo)
		goalRepo := new(MockGoalRepo)
		svc := services.NewCheckInService(checkInRepo, goalRepo, new(MockStreakRepo), getTestWorker())

		goalRepo.On("GetByID", ctx, gid).Return(&domain.Goal{ID: gid, UserID: "stranger"}, nil)

		list, err := svc.ListByGoalID(ctx, gid, uid, from, to)

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, list)
		checkInRepo.AssertNotCalled(t, "ListByGoalID")
	})
}
