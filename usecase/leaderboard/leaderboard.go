package leaderboard

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
	statsUC "github.com/taskarena/backend/usecase/stats"
)

const defaultFanout = 8

// UseCase assembles the ranked view for a requester: self plus friends,
// each resolved to profile and freshly computed stats. Per-user fetches are
// independent snapshots, so the board as a whole is eventually consistent.
type UseCase struct {
	users   repository.UserRepository
	friends repository.FriendRepository
	stats   *statsUC.UseCase
	cache   repository.LeaderboardCache
	logger  *zap.Logger
	fanout  int
}

func New(
	users repository.UserRepository,
	friends repository.FriendRepository,
	stats *statsUC.UseCase,
	cache repository.LeaderboardCache,
	logger *zap.Logger,
	fanout int,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fanout <= 0 {
		fanout = defaultFanout
	}
	return &UseCase{
		users:   users,
		friends: friends,
		stats:   stats,
		cache:   cache,
		logger:  logger,
		fanout:  fanout,
	}
}

// Build returns the requester's board, served from the snapshot cache when
// a fresh one exists.
func (uc *UseCase) Build(ctx context.Context, requesterID string) ([]domain.LeaderboardEntry, error) {
	if requesterID == "" {
		return nil, domain.ErrInvalidPayload
	}

	if uc.cache != nil {
		if entries, err := uc.cache.Get(ctx, requesterID); err == nil {
			markSelf(entries, requesterID)
			return entries, nil
		} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	friendIDs, err := uc.friends.ListFriendIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.buildEntries(ctx, dedupe(requesterID, friendIDs))
	if err != nil {
		return nil, err
	}

	domain.RankEntries(entries)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, requesterID, entries); err != nil {
			uc.logger.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}

	markSelf(entries, requesterID)
	return entries, nil
}

// BuildFor ranks an explicit set of user ids with no cache involvement.
func (uc *UseCase) BuildFor(ctx context.Context, userIDs []string) ([]domain.LeaderboardEntry, error) {
	entries, err := uc.buildEntries(ctx, dedupe("", userIDs))
	if err != nil {
		return nil, err
	}
	domain.RankEntries(entries)
	return entries, nil
}

// buildEntries fans out across the id set with bounded concurrency. A uid
// whose profile or stats cannot be fetched is dropped from the board rather
// than failing the whole build.
func (uc *UseCase) buildEntries(ctx context.Context, ids []string) ([]domain.LeaderboardEntry, error) {
	var (
		mu      sync.Mutex
		entries = make([]domain.LeaderboardEntry, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.fanout)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			user, err := uc.users.GetByID(gctx, id)
			if err != nil {
				uc.logger.Debug("dropping leaderboard entry: profile fetch failed",
					zap.String("user_id", id), zap.Error(err))
				return nil
			}

			st, err := uc.stats.ComputeStats(gctx, id)
			if err != nil {
				uc.logger.Debug("dropping leaderboard entry: stats failed",
					zap.String("user_id", id), zap.Error(err))
				return nil
			}

			mu.Lock()
			entries = append(entries, domain.LeaderboardEntry{
				UserID:    user.ID,
				Name:      user.DisplayName,
				AvatarURL: user.AvatarURL,
				Stats:     st,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func markSelf(entries []domain.LeaderboardEntry, requesterID string) {
	for i := range entries {
		entries[i].IsMe = entries[i].UserID == requesterID
	}
}

func dedupe(self string, ids []string) []string {
	seen := make(map[string]struct{}, len(ids)+1)
	out := make([]string, 0, len(ids)+1)
	if self != "" {
		seen[self] = struct{}{}
		out = append(out, self)
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
