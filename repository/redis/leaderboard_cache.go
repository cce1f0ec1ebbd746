package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

type leaderboardCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewLeaderboardCache creates a Redis-backed snapshot cache. Snapshots
// expire by TTL; no explicit invalidation is attempted, so a freshly
// completed task may take up to ttl to surface on the board.
func NewLeaderboardCache(client *redislib.Client, ttl time.Duration) repository.LeaderboardCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &leaderboardCache{
		client: client,
		prefix: "leaderboard:",
		ttl:    ttl,
	}
}

func (c *leaderboardCache) Get(ctx context.Context, requesterID string) ([]domain.LeaderboardEntry, error) {
	result, err := c.client.Get(ctx, c.prefix+requesterID).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(result), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *leaderboardCache) Set(ctx context.Context, requesterID string, entries []domain.LeaderboardEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+requesterID, payload, c.ttl).Err()
}
