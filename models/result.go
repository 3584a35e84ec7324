package models

import "time"

// Result is one student's recorded time for one sport. At most one row
// exists per (student_id, sport_id); it always holds the fastest time seen.
type Result struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	SportID   int       `json:"sport_id" db:"sport_id"`
	TimeMin   int       `json:"time_min" db:"time_min"`
	TimeSec   int       `json:"time_sec" db:"time_sec"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_path,omitempty" db:"-"`
}

// TotalSeconds is the tie-break metric: lower wins.
func (r *Result) TotalSeconds() int {
	return r.TimeMin*60 + r.TimeSec
}
