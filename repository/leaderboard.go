package repository

import (
	"context"

	"github.com/taskarena/backend/domain"
)

// LeaderboardCache stores short-lived ranked snapshots keyed by the
// requesting user. A stale snapshot is acceptable; correctness comes from
// the TTL, not invalidation.
type LeaderboardCache interface {
	Get(ctx context.Context, requesterID string) ([]domain.LeaderboardEntry, error)
	Set(ctx context.Context, requesterID string, entries []domain.LeaderboardEntry) error
}
