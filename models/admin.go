package models

// Admin mirrors the admins table. The login flow verifies credentials
// through a pluggable verifier and does not consult this table; the entity
// is kept because the schema declares it.
type Admin struct {
	ID        int    `json:"id" db:"id"`
	MSTeamsID string `json:"ms_teams_id" db:"ms_teams_id"`
	Name      string `json:"name" db:"name"`
}
