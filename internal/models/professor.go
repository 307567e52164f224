package models

// Professor represents a faculty member who may advise clubs.
type Professor struct {
	ID   int64  `db:"prof_id" json:"prof_id"`
	Name string `db:"name" json:"name"`
}
