package friend

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

type UseCase struct {
	users   repository.UserRepository
	friends repository.FriendRepository
	logger  *zap.Logger
}

func New(users repository.UserRepository, friends repository.FriendRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		friends: friends,
		logger:  logger,
	}
}

// AddFriend resolves the email to a profile and creates both directional
// edges transactionally. Self-adds and duplicates are rejected before the
// write; a missing email surfaces as ErrUserNotFound, never as a silently
// empty result.
func (uc *UseCase) AddFriend(ctx context.Context, selfID, friendEmail string) (*domain.User, error) {
	friendEmail = strings.TrimSpace(friendEmail)
	if selfID == "" || friendEmail == "" {
		return nil, domain.ErrInvalidPayload
	}

	friend, err := uc.users.GetByEmail(ctx, friendEmail)
	if err != nil {
		return nil, err
	}
	if friend.ID == selfID {
		return nil, domain.ErrSelfFriend
	}

	exists, err := uc.friends.EdgeExists(ctx, selfID, friend.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyFriends
	}

	if err := uc.friends.AddEdgePair(ctx, selfID, friend.ID); err != nil {
		return nil, err
	}

	uc.logger.Info("friendship created",
		zap.String("user_id", selfID),
		zap.String("friend_id", friend.ID))
	return friend, nil
}

// ListFriends resolves each outgoing edge to a profile. Edges pointing at
// deleted users are skipped, not errored.
func (uc *UseCase) ListFriends(ctx context.Context, userID string) ([]domain.User, error) {
	ids, err := uc.friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := uc.users.GetByID(ctx, id)
		if err != nil {
			uc.logger.Debug("skipping unresolvable friend",
				zap.String("friend_id", id), zap.Error(err))
			continue
		}
		friends = append(friends, *user)
	}
	return friends, nil
}

// FriendIDs exposes the raw friend set for fan-out consumers.
func (uc *UseCase) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	return uc.friends.ListFriendIDs(ctx, userID)
}
