package models

// Gathering is a single meeting held as part of an activity.
type Gathering struct {
	ID         int64  `db:"gathering_id" json:"gathering_id"`
	ActivityID int64  `db:"act_id" json:"act_id"`
	Name       string `db:"gathering_name" json:"gathering_name"`
}
