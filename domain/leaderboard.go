package domain

import "sort"

// LeaderboardEntry is one ranked row of a leaderboard view. Rank is
// positional and recomputed on every build, never stored.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar,omitempty"`
	Stats
	IsMe bool `json:"is_me"`
}

// RankEntries sorts entries by total points descending and assigns 1-based
// ranks. Ties resolve by user id ascending so the ordering is deterministic
// regardless of fetch order.
func RankEntries(entries []LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
