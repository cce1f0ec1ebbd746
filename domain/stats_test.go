package domain

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func completedTask(points int, at time.Time) Task {
	return Task{
		Title:       "done",
		Points:      points,
		Completed:   true,
		CompletedAt: &at,
	}
}

func TestLevelForPoints(t *testing.T) {
	is := is.New(t)

	is.Equal(LevelForPoints(0), 1)
	is.Equal(LevelForPoints(99), 1)
	is.Equal(LevelForPoints(100), 2)
	is.Equal(LevelForPoints(250), 3)
	is.Equal(LevelForPoints(-5), 1)

	// monotonic: more points never means a lower level
	prev := 0
	for p := 0; p <= 1000; p += 10 {
		level := LevelForPoints(p)
		is.True(level >= prev)
		prev = level
	}
}

func TestAggregateStats_PointsAndCounts(t *testing.T) {
	is := is.New(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tasks := []Task{
		completedTask(10, now),
		completedTask(20, now),
		{Title: "open", Points: 30},
	}

	stats := AggregateStats(tasks, now, time.UTC)
	is.Equal(stats.TotalTasks, 3)
	is.Equal(stats.CompletedTasks, 2)
	is.Equal(stats.TotalPoints, 30) // only completed tasks score
	is.Equal(stats.Level, 1)
	is.True(stats.CompletedTasks <= stats.TotalTasks)
}

func TestAggregateStats_EmptyTaskSet(t *testing.T) {
	is := is.New(t)

	stats := AggregateStats(nil, time.Now(), time.UTC)
	is.Equal(stats.TotalTasks, 0)
	is.Equal(stats.CompletedTasks, 0)
	is.Equal(stats.TotalPoints, 0)
	is.Equal(stats.Streak, 0)
	is.Equal(stats.Level, 1)
}

func TestAggregateStats_MissingPointsDefaultToTen(t *testing.T) {
	is := is.New(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tasks := []Task{completedTask(0, now), completedTask(25, now)}
	stats := AggregateStats(tasks, now, time.UTC)
	is.Equal(stats.TotalPoints, 35)
}

func TestCompletionStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 18, 30, 0, 0, loc)
	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 3, 10+offset, hour, 0, 0, 0, loc)
	}

	t.Run("run over today, yesterday and the day before", func(t *testing.T) {
		is := is.New(t)
		tasks := []Task{
			completedTask(10, day(0, 9)),
			completedTask(10, day(-1, 22)),
			completedTask(10, day(-2, 1)),
			// gap on day -3
			completedTask(10, day(-4, 12)),
		}
		is.Equal(CompletionStreak(tasks, now, loc), 3)
	})

	t.Run("today pending keeps yesterday's run alive", func(t *testing.T) {
		is := is.New(t)
		tasks := []Task{
			completedTask(10, day(-1, 8)),
			completedTask(10, day(-2, 8)),
		}
		is.Equal(CompletionStreak(tasks, now, loc), 2)
	})

	t.Run("broken when neither today nor yesterday completed", func(t *testing.T) {
		is := is.New(t)
		tasks := []Task{
			completedTask(10, day(-2, 8)),
			completedTask(10, day(-3, 8)),
		}
		is.Equal(CompletionStreak(tasks, now, loc), 0)
	})

	t.Run("multiple completions on one day count once", func(t *testing.T) {
		is := is.New(t)
		tasks := []Task{
			completedTask(10, day(0, 6)),
			completedTask(10, day(0, 20)),
		}
		is.Equal(CompletionStreak(tasks, now, loc), 1)
	})

	t.Run("open tasks never contribute", func(t *testing.T) {
		is := is.New(t)
		tasks := []Task{{Title: "open", Points: 10}}
		is.Equal(CompletionStreak(tasks, now, loc), 0)
	})
}

func TestDayWindow(t *testing.T) {
	is := is.New(t)
	loc := time.UTC

	start, end := DayWindow(time.Date(2026, 3, 10, 14, 41, 2, 0, loc), loc)
	is.Equal(start, time.Date(2026, 3, 10, 0, 0, 0, 0, loc))
	is.Equal(end, time.Date(2026, 3, 11, 0, 0, 0, 0, loc))

	// half-open window: a millisecond before midnight is out, the last
	// millisecond of the day is in, the next midnight is out
	is.True(start.Add(-time.Millisecond).Before(start))
	last := end.Add(-time.Millisecond)
	is.True(!last.Before(start) && last.Before(end))
	is.True(!end.Before(end))
}
