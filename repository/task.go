package repository

import (
	"context"
	"time"

	"github.com/taskarena/backend/domain"
)

// TaskFilter narrows task listings. Day, when set, restricts results to the
// local calendar day containing that instant.
type TaskFilter struct {
	OwnerID string
	Day     *time.Time
	Limit   int
	Offset  int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	// ListByOwner returns the owner's entire task set with no paging;
	// aggregation reads need every record.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Complete flips completed exactly once. A second call returns
	// domain.ErrTaskCompleted and never re-stamps completed_at.
	Complete(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
