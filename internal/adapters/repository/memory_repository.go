package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

// The in-memory repositories back the e2e suite and DB-less local runs.
// They mirror the Postgres contracts: ordering, conflict and not-found
// semantics, soft deletes. Values are copied in and out so callers and
// the background workers never share mutable state.

type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *goal
	stored.Version = 1
	r.store[goal.ID] = &stored
	goal.Version = 1
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}

	out := *goal
	return &out, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var goals []*domain.Goal
	for _, g := range r.store {
		if g.UserID == userID {
			out := *g
			goals = append(goals, &out)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})

	return goals, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[goal.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}
	if existing.Version != goal.Version {
		return domain.ErrGoalConflict
	}

	stored := *goal
	stored.Version = existing.Version + 1
	stored.UpdatedAt = time.Now().UTC()
	r.store[goal.ID] = &stored

	goal.Version = stored.Version
	goal.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *InMemoryGoalRepository) Archive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	if goal.ArchivedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	goal.ArchivedAt = &now
	goal.UpdatedAt = now
	goal.Version++
	return nil
}

func (r *InMemoryGoalRepository) UpdateRunStats(ctx context.Context, id string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}

	goal.CurrentRun = current
	goal.LongestRun = longest
	goal.UpdatedAt = time.Now().UTC()
	return nil
}

type InMemoryStreakRepository struct {
	streaks map[string]*domain.Streak
	members map[string][]*domain.StreakMember

	mu sync.RWMutex
}

func NewInMemoryStreakRepository() *InMemoryStreakRepository {
	return &InMemoryStreakRepository{
		streaks: make(map[string]*domain.Streak),
		members: make(map[string][]*domain.StreakMember),
	}
}

func (r *InMemoryStreakRepository) Create(ctx context.Context, streak *domain.Streak) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *streak
	r.streaks[streak.ID] = &stored
	return nil
}

func (r *InMemoryStreakRepository) GetByID(ctx context.Context, id string) (*domain.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streak, ok := r.streaks[id]
	if !ok {
		return nil, domain.ErrStreakNotFound
	}

	out := *streak
	return &out, nil
}

func (r *InMemoryStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var streaks []*domain.Streak
	for streakID, members := range r.members {
		for _, m := range members {
			if m.UserID != userID {
				continue
			}
			if streak, ok := r.streaks[streakID]; ok {
				out := *streak
				streaks = append(streaks, &out)
			}
			break
		}
	}

	sort.Slice(streaks, func(i, j int) bool {
		return streaks[i].CreatedAt.After(streaks[j].CreatedAt)
	})

	return streaks, nil
}

func (r *InMemoryStreakRepository) AddMember(ctx context.Context, member *domain.StreakMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streaks[member.StreakID]; !ok {
		return domain.ErrStreakNotFound
	}

	for _, m := range r.members[member.StreakID] {
		if m.UserID == member.UserID {
			return domain.ErrAlreadyMember
		}
	}

	stored := *member
	r.members[member.StreakID] = append(r.members[member.StreakID], &stored)
	return nil
}

func (r *InMemoryStreakRepository) GetMember(ctx context.Context, streakID, userID string) (*domain.StreakMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.members[streakID] {
		if m.UserID == userID {
			out := *m
			return &out, nil
		}
	}
	return nil, domain.ErrNotMember
}

func (r *InMemoryStreakRepository) ListMembers(ctx context.Context, streakID string) ([]*domain.StreakMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*domain.StreakMember, 0, len(r.members[streakID]))
	for _, m := range r.members[streakID] {
		out := *m
		members = append(members, &out)
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})

	return members, nil
}

func (r *InMemoryStreakRepository) UpdateMemberRunStats(ctx context.Context, streakID, userID string, current, longest int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members[streakID] {
		if m.UserID == userID {
			m.CurrentRun = current
			m.LongestRun = longest
			return nil
		}
	}
	return domain.ErrNotMember
}

type InMemoryCheckInRepository struct {
	store map[string]*domain.CheckIn

	mu sync.RWMutex
}

func NewInMemoryCheckInRepository() *InMemoryCheckInRepository {
	return &InMemoryCheckInRepository{
		store: make(map[string]*domain.CheckIn),
	}
}

func (r *InMemoryCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}

	for _, c := range r.store {
		if c.DeletedAt != nil || !c.ActivityDate.Equal(checkIn.ActivityDate) {
			continue
		}
		if checkIn.GoalID != nil && c.GoalID != nil && *c.GoalID == *checkIn.GoalID {
			return domain.ErrCheckInConflict
		}
		if checkIn.StreakID != nil && c.StreakID != nil &&
			*c.StreakID == *checkIn.StreakID && c.UserID == checkIn.UserID {
			return domain.ErrCheckInConflict
		}
	}

	stored := *checkIn
	r.store[checkIn.ID] = &stored
	return nil
}

func (r *InMemoryCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkIn, ok := r.store[id]
	if !ok || checkIn.DeletedAt != nil {
		return nil, domain.ErrCheckInNotFound
	}

	out := *checkIn
	return &out, nil
}

func (r *InMemoryCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	checkIn, ok := r.store[id]
	if !ok || checkIn.DeletedAt != nil || checkIn.UserID != userID {
		return domain.ErrCheckInNotFound
	}

	now := time.Now().UTC()
	checkIn.DeletedAt = &now
	checkIn.UpdatedAt = now
	checkIn.Version++
	return nil
}

// collect returns live check-ins matching keep, oldest first.
func (r *InMemoryCheckInRepository) collect(keep func(*domain.CheckIn) bool) []*domain.CheckIn {
	var checkIns []*domain.CheckIn
	for _, c := range r.store {
		if c.DeletedAt != nil || !keep(c) {
			continue
		}
		out := *c
		checkIns = append(checkIns, &out)
	}

	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].ActivityDate.Before(checkIns[j].ActivityDate)
	})

	return checkIns
}

func inRange(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

func (r *InMemoryCheckInRepository) ListByGoalID(ctx context.Context, goalID string, from, to time.Time) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c *domain.CheckIn) bool {
		return c.GoalID != nil && *c.GoalID == goalID && inRange(c.ActivityDate, from, to)
	}), nil
}

func (r *InMemoryCheckInRepository) ListAllByGoalID(ctx context.Context, goalID string) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c *domain.CheckIn) bool {
		return c.GoalID != nil && *c.GoalID == goalID
	}), nil
}

func (r *InMemoryCheckInRepository) ListByStreakMember(ctx context.Context, streakID, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c *domain.CheckIn) bool {
		return c.StreakID != nil && *c.StreakID == streakID && c.UserID == userID &&
			inRange(c.ActivityDate, from, to)
	}), nil
}

func (r *InMemoryCheckInRepository) ListAllByStreakMember(ctx context.Context, streakID, userID string) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c *domain.CheckIn) bool {
		return c.StreakID != nil && *c.StreakID == streakID && c.UserID == userID
	}), nil
}

func (r *InMemoryCheckInRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(c *domain.CheckIn) bool {
		return c.UserID == userID && inRange(c.ActivityDate, from, to)
	}), nil
}

func (r *InMemoryCheckInRepository) CountActiveGoalByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range r.store {
		if c.DeletedAt != nil || c.GoalID == nil || !inRange(c.ActivityDate, from, to) {
			continue
		}
		if c.Active() {
			counts[c.UserID]++
		}
	}
	return counts, nil
}

func (r *InMemoryCheckInRepository) CountDoneStreakByUser(ctx context.Context, from, to time.Time) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range r.store {
		if c.DeletedAt != nil || c.StreakID == nil || !inRange(c.ActivityDate, from, to) {
			continue
		}
		if c.Done {
			counts[c.UserID]++
		}
	}
	return counts, nil
}

type InMemoryLeaderboardRepository struct {
	boards map[string][]*domain.LeaderboardEntry

	mu sync.RWMutex
}

func NewInMemoryLeaderboardRepository() *InMemoryLeaderboardRepository {
	return &InMemoryLeaderboardRepository{
		boards: make(map[string][]*domain.LeaderboardEntry),
	}
}

func (r *InMemoryLeaderboardRepository) ReplaceAll(ctx context.Context, period string, entries []*domain.LeaderboardEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]*domain.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out := *e
		stored = append(stored, &out)
	}
	r.boards[period] = stored
	return nil
}

func (r *InMemoryLeaderboardRepository) ListByPeriod(ctx context.Context, period string) ([]*domain.LeaderboardEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*domain.LeaderboardEntry, 0, len(r.boards[period]))
	for _, e := range r.boards[period] {
		out := *e
		entries = append(entries, &out)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	return entries, nil
}
