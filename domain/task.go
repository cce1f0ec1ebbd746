package domain

import "time"

// Category groups tasks by the area of life they belong to.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryHealth   Category = "Health"
	CategoryLearning Category = "Learning"
	CategoryPersonal Category = "Personal"
	CategorySocial   Category = "Social"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryHealth, CategoryLearning, CategoryPersonal, CategorySocial:
		return true
	}
	return false
}

// Priority is the user-assigned urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Point and estimate bounds applied at creation time.
const (
	DefaultTaskPoints = 10
	MaxTaskPoints     = 100
	MinEstimateMin    = 1
	MaxEstimateMin    = 120
)

// Task represents a single user-owned unit of work with a fixed point
// reward. Points are stamped at creation and never recomputed; completion
// is a one-way transition.
type Task struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Category         Category   `json:"category"`
	Priority         Priority   `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Points           int        `json:"points"`
	Completed        bool       `json:"completed"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed
}

// PointValue returns the stored reward, falling back to DefaultTaskPoints
// for records written before points were mandatory.
func (t *Task) PointValue() int {
	if t == nil || t.Points <= 0 {
		return DefaultTaskPoints
	}
	return t.Points
}
