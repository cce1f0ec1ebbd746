package usecase

import (
	"context"

	"github.com/taskarena/backend/domain"
)

// Operation names shared with the buffer infrastructure.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Only profile upserts and task creations are bufferable;
// completions are never buffered because scoring must fail loudly rather
// than apply late.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
}
