package models

// Sport is a sports-day event, e.g. 100公尺短跑.
type Sport struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
