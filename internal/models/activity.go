package models

// OpenEndDate marks an activity without a planned end.
const OpenEndDate = "2099-12-31"

// DateLayout is the accepted input format for activity dates.
const DateLayout = "2006-01-02"

// Activity is a club-owned event spanning a date range.
type Activity struct {
	ID        int64   `db:"act_id" json:"act_id"`
	ClubID    int64   `db:"club_id" json:"club_id"`
	Title     string  `db:"act_title" json:"act_title"`
	StartDate string  `db:"start_date" json:"start_date"`
	EndDate   *string `db:"end_date" json:"end_date,omitempty"`
}

// ActivityPeriod bounds an overlap search. ClubID zero means any club.
type ActivityPeriod struct {
	From   string
	To     string
	ClubID int64
}
