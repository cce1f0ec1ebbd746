package domain

import "time"

// PointsPerLevel is the fixed amount of points between levels.
const PointsPerLevel = 100

const dayKeyLayout = "2006-01-02"

// Stats is the derived aggregate for a single user. The field set and JSON
// shape are a stable contract for API consumers.
type Stats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	TotalPoints    int `json:"totalPoints"`
	Streak         int `json:"streak"`
	Level          int `json:"level"`
}

// LevelForPoints maps a point total onto a level. Level starts at 1 and
// only ever grows, since completed points are never revoked.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// AggregateStats folds a user's full task set into its derived statistics.
// Tasks are the single source of truth: nothing here reads stored counters.
// An empty task set yields zero counts at level 1.
func AggregateStats(tasks []Task, now time.Time, loc *time.Location) Stats {
	stats := Stats{TotalTasks: len(tasks)}
	for i := range tasks {
		if !tasks[i].Completed {
			continue
		}
		stats.CompletedTasks++
		stats.TotalPoints += tasks[i].PointValue()
	}
	stats.Level = LevelForPoints(stats.TotalPoints)
	stats.Streak = CompletionStreak(tasks, now, loc)
	return stats
}

// CompletionStreak counts consecutive local calendar days with at least one
// task completion, walking backwards from today. A day without a completion
// breaks the run, except that today itself may still be pending: a run
// ending yesterday counts in full until midnight passes.
func CompletionStreak(tasks []Task, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}

	days := make(map[string]struct{})
	for i := range tasks {
		if !tasks[i].Completed || tasks[i].CompletedAt == nil {
			continue
		}
		days[tasks[i].CompletedAt.In(loc).Format(dayKeyLayout)] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}

	day := startOfDay(now.In(loc))
	if _, ok := days[day.Format(dayKeyLayout)]; !ok {
		// no completion yet today; the run may still end yesterday
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := days[day.Format(dayKeyLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayWindow returns the half-open local-day interval [start, end) that
// contains t. Used for calendar-date task filtering.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := startOfDay(t.In(loc))
	return start, start.AddDate(0, 0, 1)
}
