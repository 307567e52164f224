package models

// ClubStudent links a student to a club.
type ClubStudent struct {
	ClubID    int64 `db:"club_id" json:"club_id"`
	StudentID int64 `db:"student_id" json:"student_id"`
}

// GatheringStudent links a student to a gathering they attend.
type GatheringStudent struct {
	GatheringID int64 `db:"gathering_id" json:"gathering_id"`
	StudentID   int64 `db:"student_id" json:"student_id"`
}
