package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool, loc: time.Local}
}

const taskColumns = `id, owner_id, title, description, category, priority, estimated_minutes, points, completed, created_at, completed_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE owner_id = $1
	  AND ($2::timestamptz IS NULL OR (created_at >= $2 AND created_at < $3))
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`

	var windowStart, windowEnd interface{}
	if filter.Day != nil {
		start, end := domain.DayWindow(*filter.Day, r.loc)
		windowStart, windowEnd = start, end
	}

	rows, err := r.pool.Query(ctx, query, filter.OwnerID, windowStart, windowEnd, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE owner_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, owner_id, title, description, category, priority, estimated_minutes, points)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING completed, created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
		task.EstimatedMinutes,
		task.Points,
	).Scan(&task.Completed, &task.CreatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Complete(ctx context.Context, id string) (*domain.Task, error) {
	// conditional update: an already-completed row is untouched so its
	// completed_at is never re-stamped
	const query = `
	UPDATE tasks
	SET completed = TRUE,
		completed_at = NOW()
	WHERE id = $1 AND completed = FALSE
	RETURNING ` + taskColumns + `
	`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}

	// distinguish a missing task from a double completion
	var completed bool
	if err := r.pool.QueryRow(ctx, `SELECT completed FROM tasks WHERE id = $1`, id).Scan(&completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if completed {
		return nil, domain.ErrTaskCompleted
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var completedAt *time.Time

	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.Priority,
		&task.EstimatedMinutes,
		&task.Points,
		&task.Completed,
		&task.CreatedAt,
		&completedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.CompletedAt = completedAt
	return &task, nil
}
