package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
	seq   int
	now   time.Time
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks: make(map[string]*domain.Task),
		now:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.tasks {
		if task.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Day != nil {
			start, end := domain.DayWindow(*filter.Day, time.UTC)
			if task.CreatedAt.Before(start) || !task.CreatedAt.Before(end) {
				continue
			}
		}
		out = append(out, *task)
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return f.List(ctx, repository.TaskFilter{OwnerID: ownerID})
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	f.seq++
	task.ID = fmt.Sprintf("task-%d", f.seq)
	task.CreatedAt = f.now
	copied := *task
	f.tasks[task.ID] = &copied
	return task, nil
}

func (f *fakeTaskRepo) Complete(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if task.Completed {
		return nil, domain.ErrTaskCompleted
	}
	task.Completed = true
	at := f.now
	task.CompletedAt = &at
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func TestCreateTask_Validation(t *testing.T) {
	ctx := context.Background()
	uc := New(newFakeTaskRepo(), nil, nil)

	t.Run("empty title rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "   "})
		is.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("points out of range rejected", func(t *testing.T) {
		is := is.New(t)
		_, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", Points: 101})
		is.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
		_, err = uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", Points: -1})
		is.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("zero points default to ten", func(t *testing.T) {
		is := is.New(t)
		created, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run"})
		is.NoErr(err)
		is.Equal(created.Points, domain.DefaultTaskPoints)
	})

	t.Run("estimate clamped into bounds", func(t *testing.T) {
		is := is.New(t)
		created, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", EstimatedMinutes: 900})
		is.NoErr(err)
		is.Equal(created.EstimatedMinutes, domain.MaxEstimateMin)
	})

	t.Run("unknown category and priority defaulted", func(t *testing.T) {
		is := is.New(t)
		created, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", Category: "Chores"})
		is.NoErr(err)
		is.Equal(created.Category, domain.CategoryPersonal)
		is.Equal(created.Priority, domain.PriorityMedium)
	})

	t.Run("completion state forced off at creation", func(t *testing.T) {
		is := is.New(t)
		at := time.Now()
		created, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", Completed: true, CompletedAt: &at})
		is.NoErr(err)
		is.Equal(created.Completed, false)
		is.Equal(created.CompletedAt, nil)
	})
}

func TestCompleteTask_Idempotency(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	created, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "run", Points: 25})
	is.NoErr(err)

	done, err := uc.CompleteTask(ctx, created.ID)
	is.NoErr(err)
	is.True(done.Completed)
	is.True(done.CompletedAt != nil)
	firstStamp := *done.CompletedAt

	// the second completion must fail and must not re-stamp
	_, err = uc.CompleteTask(ctx, created.ID)
	is.True(domain.IsDomainError(err, domain.ErrCodeConflict))

	stored, err := uc.GetTask(ctx, created.ID)
	is.NoErr(err)
	is.Equal(*stored.CompletedAt, firstStamp)
}

func TestCompleteTask_NotFound(t *testing.T) {
	is := is.New(t)
	uc := New(newFakeTaskRepo(), nil, nil)

	_, err := uc.CompleteTask(context.Background(), "missing")
	is.True(domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestListTasks_DayFilter(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo.now = day.Add(-time.Millisecond) // 23:59:59.999 previous day
	_, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "before"})
	is.NoErr(err)

	repo.now = day // first instant of the day
	inside, err := uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "inside"})
	is.NoErr(err)

	repo.now = day.AddDate(0, 0, 1) // next midnight
	_, err = uc.CreateTask(ctx, &domain.Task{OwnerID: "u1", Title: "after"})
	is.NoErr(err)

	listed, err := uc.ListTasks(ctx, "u1", &day, 0, 0)
	is.NoErr(err)
	is.Equal(len(listed), 1)
	is.Equal(listed[0].ID, inside.ID)
}
