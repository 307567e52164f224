package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// ActivityRepository manages persistence for club activities.
type ActivityRepository struct {
	table      *Table
	gatherings *Table
	now        func() time.Time
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(tables *Tables) *ActivityRepository {
	return &ActivityRepository{table: tables.Activity, gatherings: tables.Gathering, now: time.Now}
}

// Create inserts an activity. An empty start date means today and an empty
// end date leaves the activity open.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.StartDate == "" {
		activity.StartDate = r.now().Format(models.DateLayout)
	}
	endDate := models.OpenEndDate
	if activity.EndDate != nil && *activity.EndDate != "" {
		endDate = *activity.EndDate
	}
	id, err := r.table.Insert(ctx, models.Attributes{
		"club_id":    activity.ClubID,
		"act_title":  activity.Title,
		"start_date": activity.StartDate,
		"end_date":   endDate,
	})
	if err != nil {
		return err
	}
	activity.ID = id
	activity.EndDate = &endDate
	return nil
}

// FindByID fetches a single activity.
func (r *ActivityRepository) FindByID(ctx context.Context, id int64) (*models.Activity, error) {
	var activity models.Activity
	const query = `SELECT act_id, club_id, act_title, start_date, end_date FROM Activity WHERE act_id = ?`
	if err := r.table.Get(ctx, "find_activity", &activity, query, id); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ReadByID returns the activity row with id.
func (r *ActivityRepository) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"act_id": id})
}

// ReadByClubID returns every activity of a club.
func (r *ActivityRepository) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"club_id": clubID})
}

// ReadByTitle returns activities whose title contains title, optionally
// limited to one club when clubID is positive.
func (r *ActivityRepository) ReadByTitle(ctx context.Context, title string, clubID int64) (*models.ResultSet, error) {
	query := `SELECT * FROM Activity WHERE act_title LIKE ?`
	args := []interface{}{containsPattern(title)}
	if clubID > 0 {
		query += " AND club_id = ?"
		args = append(args, clubID)
	}
	return r.table.Query(ctx, "read_activity_by_title", query, args...)
}

// ReadByPeriod returns activities overlapping the period. Open-ended
// activities (NULL end date) overlap any period after their start.
func (r *ActivityRepository) ReadByPeriod(ctx context.Context, period models.ActivityPeriod) (*models.ResultSet, error) {
	query := `SELECT * FROM Activity WHERE (start_date <= ? AND (end_date >= ? OR end_date IS NULL))`
	args := []interface{}{period.To, period.From}
	if period.ClubID > 0 {
		query += " AND club_id = ?"
		args = append(args, period.ClubID)
	}
	return r.table.Query(ctx, "read_activity_by_period", query, args...)
}

// Update changes the given columns of exactly one activity.
func (r *ActivityRepository) Update(ctx context.Context, id int64, values models.Attributes) error {
	return r.table.Update(ctx, models.Attributes{"act_id": id}, values)
}

// Delete removes exactly one activity. An activity that still has gatherings is kept.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	return r.table.InTx(ctx, func(tx *sqlx.Tx) error {
		held, err := r.gatherings.CountTx(ctx, tx, models.Attributes{"act_id": id})
		if err != nil {
			return err
		}
		if held > 0 {
			return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("activity %d still has %d gathering(s)", id, held))
		}
		return r.table.DeleteTx(ctx, tx, models.Attributes{"act_id": id})
	})
}
