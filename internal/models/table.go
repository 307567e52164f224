package models

// Table names as deployed.
const (
	TableStudent          = "Student"
	TableProfessor        = "Professor"
	TableClub             = "Club"
	TableActivity         = "Activity"
	TableGathering        = "Gathering"
	TableClubStudent      = "Club_Student"
	TableGatheringStudent = "Gathering_Student"
	TableLocation         = "Location"
)

// Attributes maps column names to values for inserts, conditions and updates.
type Attributes map[string]interface{}
