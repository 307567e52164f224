package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
)

// GatheringRepository manages persistence for activity gatherings.
type GatheringRepository struct {
	table        *Table
	participants *Table
}

// NewGatheringRepository constructs a GatheringRepository.
func NewGatheringRepository(tables *Tables) *GatheringRepository {
	return &GatheringRepository{table: tables.Gathering, participants: tables.GatheringStudent}
}

// Create inserts a gathering and records its generated id.
func (r *GatheringRepository) Create(ctx context.Context, gathering *models.Gathering) error {
	id, err := r.table.Insert(ctx, models.Attributes{
		"act_id":         gathering.ActivityID,
		"gathering_name": gathering.Name,
	})
	if err != nil {
		return err
	}
	gathering.ID = id
	return nil
}

// FindByID fetches a single gathering.
func (r *GatheringRepository) FindByID(ctx context.Context, id int64) (*models.Gathering, error) {
	var gathering models.Gathering
	const query = `SELECT gathering_id, act_id, gathering_name FROM Gathering WHERE gathering_id = ?`
	if err := r.table.Get(ctx, "find_gathering", &gathering, query, id); err != nil {
		return nil, err
	}
	return &gathering, nil
}

// ReadByActivityID returns the gatherings of an activity.
func (r *GatheringRepository) ReadByActivityID(ctx context.Context, actID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"act_id": actID})
}

// ReadByName returns gatherings whose name contains name.
func (r *GatheringRepository) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return r.table.StringSelect(ctx, models.Attributes{"gathering_name": name})
}

// ReadStudents returns the students taking part in a gathering.
func (r *GatheringRepository) ReadStudents(ctx context.Context, gatheringID int64) (*models.ResultSet, error) {
	const query = `SELECT * FROM Student AS s WHERE s.student_id IN (SELECT gs.student_id FROM Gathering_Student AS gs WHERE gs.gathering_id = ?)`
	return r.table.Query(ctx, "read_gathering_students", query, gatheringID)
}

// UpdateName renames exactly one gathering.
func (r *GatheringRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.table.Update(ctx, models.Attributes{"gathering_id": id}, models.Attributes{"gathering_name": name})
}

// Delete removes a gathering together with its participant rows.
func (r *GatheringRepository) Delete(ctx context.Context, id int64) error {
	return r.table.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := r.participants.DeleteWhereTx(ctx, tx, models.Attributes{"gathering_id": id}); err != nil {
			return err
		}
		return r.table.DeleteTx(ctx, tx, models.Attributes{"gathering_id": id})
	})
}
