package models

import "time"

// LeaderboardEntry is a result row joined with its student, class and sport
// metadata, as served by the leaderboard and showcase endpoints.
type LeaderboardEntry struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	SportID   int       `json:"sport_id" db:"sport_id"`
	TimeMin   int       `json:"time_min" db:"time_min"`
	TimeSec   int       `json:"time_sec" db:"time_sec"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_path,omitempty" db:"-"`

	NameZH        string `json:"name_zh" db:"name_zh"`
	NameEN        string `json:"name_en" db:"name_en"`
	StudentNumber string `json:"student_number" db:"student_number"`
	ClassName     string `json:"class_name" db:"class_name"`
	SportName     string `json:"sport_name" db:"sport_name"`
}

// ShowcaseGroup is the per-sport partition of the unfiltered leaderboard,
// cycled by the showcase display.
type ShowcaseGroup struct {
	SportID   int                `json:"sport_id"`
	SportName string             `json:"sport_name"`
	Results   []LeaderboardEntry `json:"results"`
}
