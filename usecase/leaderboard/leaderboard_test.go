package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
	statsUC "github.com/taskarena/backend/usecase/stats"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) TouchLastActive(context.Context, string) error { return nil }

type fakeFriendRepo struct {
	friends map[string][]string
}

func (f *fakeFriendRepo) AddEdgePair(context.Context, string, string) error { return nil }
func (f *fakeFriendRepo) AddEdge(context.Context, string, string) error     { return nil }
func (f *fakeFriendRepo) EdgeExists(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeFriendRepo) ListFriendIDs(_ context.Context, userID string) ([]string, error) {
	return f.friends[userID], nil
}

func (f *fakeFriendRepo) ListAsymmetric(context.Context, int) ([]domain.FriendEdge, error) {
	return nil, nil
}

type fakeTaskRepo struct {
	byOwner map[string][]domain.Task
}

func (f *fakeTaskRepo) GetByID(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return f.byOwner[filter.OwnerID], nil
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	return f.byOwner[ownerID], nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}

func (f *fakeTaskRepo) Complete(context.Context, string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) Delete(context.Context, string) error { return nil }

type fakeCache struct {
	snapshots map[string][]domain.LeaderboardEntry
	hits      int
}

func (f *fakeCache) Get(_ context.Context, requesterID string) ([]domain.LeaderboardEntry, error) {
	entries, ok := f.snapshots[requesterID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	f.hits++
	return entries, nil
}

func (f *fakeCache) Set(_ context.Context, requesterID string, entries []domain.LeaderboardEntry) error {
	f.snapshots[requesterID] = entries
	return nil
}

func completedTasks(points ...int) []domain.Task {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := make([]domain.Task, 0, len(points))
	for _, p := range points {
		tasks = append(tasks, domain.Task{Points: p, Completed: true, CompletedAt: &at})
	}
	return tasks
}

func newBoard(users *fakeUserRepo, friends *fakeFriendRepo, tasks *fakeTaskRepo, cache repository.LeaderboardCache) *UseCase {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := statsUC.New(tasks, nil).WithClock(func() time.Time { return now }, time.UTC)
	return New(users, friends, stats, cache, nil, 4)
}

func TestBuild_OrderingAndTieBreak(t *testing.T) {
	is := is.New(t)

	users := &fakeUserRepo{users: map[string]domain.User{
		"a": {ID: "a", DisplayName: "Ana"},
		"b": {ID: "b", DisplayName: "Bo"},
		"c": {ID: "c", DisplayName: "Cy"},
	}}
	friends := &fakeFriendRepo{friends: map[string][]string{"a": {"b", "c"}}}
	tasks := &fakeTaskRepo{byOwner: map[string][]domain.Task{
		"a": completedTasks(100),
		"b": completedTasks(100, 100, 50),
		"c": completedTasks(200, 50),
	}}

	entries, err := newBoard(users, friends, tasks, nil).Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(len(entries), 3)

	// b and c tie at 250; uid ascending puts b first, a(100) is last
	is.Equal(entries[0].UserID, "b")
	is.Equal(entries[1].UserID, "c")
	is.Equal(entries[2].UserID, "a")
	is.Equal(entries[0].Rank, 1)
	is.Equal(entries[2].Rank, 3)
	is.Equal(entries[0].Level, 3)
	is.True(entries[2].IsMe)
	is.True(!entries[0].IsMe)
}

func TestBuild_ZeroTaskFriendStillListed(t *testing.T) {
	is := is.New(t)

	users := &fakeUserRepo{users: map[string]domain.User{
		"a": {ID: "a", DisplayName: "Ana"},
		"b": {ID: "b", DisplayName: "Bo"},
	}}
	friends := &fakeFriendRepo{friends: map[string][]string{"a": {"b"}}}
	tasks := &fakeTaskRepo{byOwner: map[string][]domain.Task{"a": completedTasks(30)}}

	entries, err := newBoard(users, friends, tasks, nil).Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.Equal(entries[1].UserID, "b")
	is.Equal(entries[1].TotalPoints, 0)
	is.Equal(entries[1].Level, 1)
}

func TestBuild_MissingProfileDropped(t *testing.T) {
	is := is.New(t)

	users := &fakeUserRepo{users: map[string]domain.User{
		"a": {ID: "a", DisplayName: "Ana"},
	}}
	friends := &fakeFriendRepo{friends: map[string][]string{"a": {"deleted"}}}
	tasks := &fakeTaskRepo{byOwner: map[string][]domain.Task{}}

	entries, err := newBoard(users, friends, tasks, nil).Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].UserID, "a")
}

func TestBuild_ServesCachedSnapshot(t *testing.T) {
	is := is.New(t)

	users := &fakeUserRepo{users: map[string]domain.User{
		"a": {ID: "a", DisplayName: "Ana"},
	}}
	friends := &fakeFriendRepo{friends: map[string][]string{}}
	tasks := &fakeTaskRepo{byOwner: map[string][]domain.Task{"a": completedTasks(10)}}
	cache := &fakeCache{snapshots: make(map[string][]domain.LeaderboardEntry)}

	board := newBoard(users, friends, tasks, cache)

	first, err := board.Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(cache.hits, 0)

	second, err := board.Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(cache.hits, 1)
	is.Equal(len(second), len(first))
	is.True(second[0].IsMe) // the overlay is applied even on cached reads
}

func TestBuild_SelfDeduplicated(t *testing.T) {
	is := is.New(t)

	users := &fakeUserRepo{users: map[string]domain.User{
		"a": {ID: "a", DisplayName: "Ana"},
	}}
	// edge list already contains the requester
	friends := &fakeFriendRepo{friends: map[string][]string{"a": {"a"}}}
	tasks := &fakeTaskRepo{byOwner: map[string][]domain.Task{}}

	entries, err := newBoard(users, friends, tasks, nil).Build(context.Background(), "a")
	is.NoErr(err)
	is.Equal(len(entries), 1)
}
