package domain

import "time"

// FriendEdge is one direction of a mutual friendship. A healthy friendship
// is always a pair of edges (a→b, b→a) created together; a lone edge is a
// consistency defect that the reconciler repairs.
type FriendEdge struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}
