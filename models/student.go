package models

// Student belongs to exactly one class. The student number is only unique
// within a class, never globally.
type Student struct {
	ID            int    `json:"id" db:"id"`
	ClassID       int    `json:"class_id" db:"class_id"`
	StudentNumber string `json:"student_number" db:"student_number"`
	NameZH        string `json:"name_zh" db:"name_zh"`
	NameEN        string `json:"name_en" db:"name_en"`
}
