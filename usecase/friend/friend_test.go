package friend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/taskarena/backend/domain"
)

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) TouchLastActive(context.Context, string) error { return nil }

type fakeFriendRepo struct {
	edges map[string]struct{} // "user|friend"
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{edges: make(map[string]struct{})}
}

func edgeKey(userID, friendID string) string {
	return fmt.Sprintf("%s|%s", userID, friendID)
}

func (f *fakeFriendRepo) AddEdgePair(_ context.Context, userID, friendID string) error {
	if _, ok := f.edges[edgeKey(userID, friendID)]; ok {
		return domain.ErrAlreadyFriends
	}
	f.edges[edgeKey(userID, friendID)] = struct{}{}
	f.edges[edgeKey(friendID, userID)] = struct{}{}
	return nil
}

func (f *fakeFriendRepo) AddEdge(_ context.Context, userID, friendID string) error {
	f.edges[edgeKey(userID, friendID)] = struct{}{}
	return nil
}

func (f *fakeFriendRepo) EdgeExists(_ context.Context, userID, friendID string) (bool, error) {
	_, ok := f.edges[edgeKey(userID, friendID)]
	return ok, nil
}

func (f *fakeFriendRepo) ListFriendIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for key := range f.edges {
		parts := strings.SplitN(key, "|", 2)
		if parts[0] == userID {
			ids = append(ids, parts[1])
		}
	}
	return ids, nil
}

func (f *fakeFriendRepo) ListAsymmetric(context.Context, int) ([]domain.FriendEdge, error) {
	var edges []domain.FriendEdge
	for key := range f.edges {
		parts := strings.SplitN(key, "|", 2)
		if _, ok := f.edges[edgeKey(parts[1], parts[0])]; !ok {
			edges = append(edges, domain.FriendEdge{UserID: parts[0], FriendID: parts[1]})
		}
	}
	return edges, nil
}

func setup() (*UseCase, *fakeUserRepo, *fakeFriendRepo) {
	users := &fakeUserRepo{users: map[string]domain.User{
		"x": {ID: "x", DisplayName: "Xena", Email: "x@example.com"},
		"y": {ID: "y", DisplayName: "Yuri", Email: "y@example.com"},
	}}
	friends := newFakeFriendRepo()
	return New(users, friends, nil), users, friends
}

func TestAddFriend_Symmetry(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	uc, _, _ := setup()

	added, err := uc.AddFriend(ctx, "x", "y@example.com")
	is.NoErr(err)
	is.Equal(added.ID, "y")

	// both directions must be visible
	xFriends, err := uc.ListFriends(ctx, "x")
	is.NoErr(err)
	is.Equal(len(xFriends), 1)
	is.Equal(xFriends[0].ID, "y")

	yFriends, err := uc.ListFriends(ctx, "y")
	is.NoErr(err)
	is.Equal(len(yFriends), 1)
	is.Equal(yFriends[0].ID, "x")
}

func TestAddFriend_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email is a not-found, not a silent success", func(t *testing.T) {
		is := is.New(t)
		uc, _, _ := setup()
		_, err := uc.AddFriend(ctx, "x", "nobody@example.com")
		is.True(domain.IsDomainError(err, domain.ErrCodeNotFound))
	})

	t.Run("self-add rejected", func(t *testing.T) {
		is := is.New(t)
		uc, _, _ := setup()
		_, err := uc.AddFriend(ctx, "x", "x@example.com")
		is.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	t.Run("duplicate add rejected", func(t *testing.T) {
		is := is.New(t)
		uc, _, _ := setup()
		_, err := uc.AddFriend(ctx, "x", "y@example.com")
		is.NoErr(err)
		_, err = uc.AddFriend(ctx, "x", "y@example.com")
		is.Equal(err, domain.ErrAlreadyFriends)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		is := is.New(t)
		uc, _, _ := setup()
		added, err := uc.AddFriend(ctx, "x", "Y@Example.COM")
		is.NoErr(err)
		is.Equal(added.ID, "y")
	})
}

func TestListFriends_SkipsUnresolvable(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	uc, users, friends := setup()

	_, err := uc.AddFriend(ctx, "x", "y@example.com")
	is.NoErr(err)

	// a dangling edge to a deleted account is skipped, not an error
	is.NoErr(friends.AddEdge(ctx, "x", "ghost"))
	delete(users.users, "ghost")

	listed, err := uc.ListFriends(ctx, "x")
	is.NoErr(err)
	is.Equal(len(listed), 1)
	is.Equal(listed[0].ID, "y")
}
