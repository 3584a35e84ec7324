package models

// Class is a school class (班別), e.g. 高一甲.
type Class struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
