package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
	"github.com/taskarena/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

// ListTasks returns the owner's tasks newest-first, optionally restricted
// to the local calendar day containing day.
func (uc *UseCase) ListTasks(ctx context.Context, ownerID string, day *time.Time, limit, offset int) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{
		OwnerID: ownerID,
		Day:     day,
		Limit:   limit,
		Offset:  offset,
	})
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask validates and stores a new task. Points are fixed here, at
// creation time; completion never recomputes them.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := validateNew(task); err != nil {
		return nil, err
	}
	task.Completed = false
	task.CompletedAt = nil

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// CompleteTask marks a task done exactly once. A second call fails with
// domain.ErrTaskCompleted; it never buffers, so a completed point total can
// never be claimed twice.
func (uc *UseCase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.tasks.Complete(ctx, id)
}

// DeleteTask removes a task record. Deletion sits outside the scoring path:
// no aggregate consults it and no points are adjusted.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidPayload
	}
	return uc.tasks.Delete(ctx, id)
}

func validateNew(task *domain.Task) error {
	if task == nil || task.OwnerID == "" {
		return domain.ErrInvalidPayload
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return domain.WrapError(domain.ErrCodeInvalid, "task title must not be empty", nil)
	}
	if task.Points < 0 || task.Points > domain.MaxTaskPoints {
		return domain.WrapError(domain.ErrCodeInvalid, "task points must be between 1 and 100", nil)
	}
	if task.Points == 0 {
		task.Points = domain.DefaultTaskPoints
	}
	if !task.Category.Valid() {
		task.Category = domain.CategoryPersonal
	}
	if !task.Priority.Valid() {
		task.Priority = domain.PriorityMedium
	}
	// estimate is a soft bound, clamped rather than rejected
	if task.EstimatedMinutes < domain.MinEstimateMin {
		task.EstimatedMinutes = domain.MinEstimateMin
	}
	if task.EstimatedMinutes > domain.MaxEstimateMin {
		task.EstimatedMinutes = domain.MaxEstimateMin
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
