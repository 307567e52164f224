package models

// Club represents a student club with a budget and an advising professor.
type Club struct {
	ID          int64   `db:"club_id" json:"club_id"`
	Name        string  `db:"club_name" json:"club_name"`
	Budget      float64 `db:"budget" json:"budget"`
	ProfessorID *int64  `db:"prof_id" json:"prof_id,omitempty"`
}

// Club info joins that can be requested alongside the club row.
const (
	JoinProfessor = "Professor"
	JoinLocation  = "Location"
)
