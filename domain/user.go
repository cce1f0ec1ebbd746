package domain

import "time"

// User is a member profile. Scoring fields (points, level, streak) are
// intentionally absent: statistics are always derived from the task set on
// read, never stored alongside the profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
	LastActive  time.Time `json:"last_active"`
}
