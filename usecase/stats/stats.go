package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

// UseCase derives per-user statistics from the raw task set on every call.
// Nothing is persisted back: tasks are the single source of truth, and two
// concurrent computations can only disagree by in-flight completions.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
	loc    *time.Location
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
}

// WithClock overrides the time source. Intended for tests.
func (uc *UseCase) WithClock(now func() time.Time, loc *time.Location) *UseCase {
	if now != nil {
		uc.now = now
	}
	if loc != nil {
		uc.loc = loc
	}
	return uc
}

// ComputeStats aggregates the user's full task history. A user with no
// tasks gets zero counts at level 1 rather than an error.
func (uc *UseCase) ComputeStats(ctx context.Context, userID string) (domain.Stats, error) {
	if userID == "" {
		return domain.Stats{}, domain.ErrInvalidPayload
	}

	tasks, err := uc.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.AggregateStats(tasks, uc.now(), uc.loc), nil
}
