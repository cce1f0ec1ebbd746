package repository

import (
	"context"

	"github.com/taskarena/backend/domain"
)

type FriendRepository interface {
	// AddEdgePair writes both directional edges in a single transaction so
	// a friendship can never be half-created.
	AddEdgePair(ctx context.Context, userID, friendID string) error
	// AddEdge writes one directional edge, ignoring duplicates. Used by the
	// reconciler to repair asymmetric pairs left by out-of-band writers.
	AddEdge(ctx context.Context, userID, friendID string) error
	EdgeExists(ctx context.Context, userID, friendID string) (bool, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	// ListAsymmetric returns edges whose reverse direction is missing.
	ListAsymmetric(ctx context.Context, limit int) ([]domain.FriendEdge, error)
}
