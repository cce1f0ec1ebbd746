package domain

import (
	"testing"

	"github.com/matryer/is"
)

func TestRankEntries(t *testing.T) {
	t.Run("sorts by total points descending", func(t *testing.T) {
		is := is.New(t)
		entries := []LeaderboardEntry{
			{UserID: "a", Stats: Stats{TotalPoints: 100}},
			{UserID: "b", Stats: Stats{TotalPoints: 250}},
			{UserID: "c", Stats: Stats{TotalPoints: 50}},
		}
		RankEntries(entries)
		is.Equal(entries[0].UserID, "b")
		is.Equal(entries[1].UserID, "a")
		is.Equal(entries[2].UserID, "c")
		is.Equal(entries[0].Rank, 1)
		is.Equal(entries[1].Rank, 2)
		is.Equal(entries[2].Rank, 3)
	})

	t.Run("ties resolve by user id ascending", func(t *testing.T) {
		is := is.New(t)
		entries := []LeaderboardEntry{
			{UserID: "a", Stats: Stats{TotalPoints: 100}},
			{UserID: "c", Stats: Stats{TotalPoints: 250}},
			{UserID: "b", Stats: Stats{TotalPoints: 250}},
		}
		RankEntries(entries)
		is.Equal(entries[0].UserID, "b")
		is.Equal(entries[1].UserID, "c")
		is.Equal(entries[2].UserID, "a") // lowest score is last
	})

	t.Run("zero-score entries keep a rank", func(t *testing.T) {
		is := is.New(t)
		entries := []LeaderboardEntry{
			{UserID: "fresh", Stats: Stats{Level: 1}},
			{UserID: "vet", Stats: Stats{TotalPoints: 10, Level: 1}},
		}
		RankEntries(entries)
		is.Equal(entries[1].UserID, "fresh")
		is.Equal(entries[1].Rank, 2)
	})
}
