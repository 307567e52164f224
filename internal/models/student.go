package models

// Student represents a learner who may join clubs and gatherings.
type Student struct {
	ID         int64  `db:"student_id" json:"student_id"`
	Name       string `db:"name" json:"name"`
	Department string `db:"department" json:"department"`
}
