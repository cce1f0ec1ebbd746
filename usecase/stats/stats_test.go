package stats

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

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

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	repo := &fakeTaskRepo{byOwner: map[string][]domain.Task{
		"scorer": {
			{Points: 10, Completed: true, CompletedAt: &now},
			{Points: 20, Completed: true, CompletedAt: &yesterday},
			{Points: 30}, // open, contributes no points
		},
	}}
	uc := New(repo, nil).WithClock(func() time.Time { return now }, time.UTC)

	t.Run("derives counts, points, level and streak", func(t *testing.T) {
		is := is.New(t)
		stats, err := uc.ComputeStats(context.Background(), "scorer")
		is.NoErr(err)
		is.Equal(stats, domain.Stats{
			TotalTasks:     3,
			CompletedTasks: 2,
			TotalPoints:    30,
			Streak:         2,
			Level:          1,
		})
	})

	t.Run("user with no tasks gets zeros at level 1", func(t *testing.T) {
		is := is.New(t)
		stats, err := uc.ComputeStats(context.Background(), "fresh")
		is.NoErr(err)
		is.Equal(stats, domain.Stats{Level: 1})
	})

	t.Run("empty user id rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := uc.ComputeStats(context.Background(), "")
		is.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}
