package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// ProfessorRepository manages persistence for professors.
type ProfessorRepository struct {
	table *Table
	clubs *Table
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(tables *Tables) *ProfessorRepository {
	return &ProfessorRepository{table: tables.Professor, clubs: tables.Club}
}

// Describe returns the Professor column metadata.
func (r *ProfessorRepository) Describe(ctx context.Context) (*models.ResultSet, error) {
	return r.table.Describe(ctx)
}

// Create inserts a professor and records its generated id.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	id, err := r.table.Insert(ctx, models.Attributes{"name": professor.Name})
	if err != nil {
		return err
	}
	professor.ID = id
	return nil
}

// ReadByID returns the professor row with id.
func (r *ProfessorRepository) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"prof_id": id})
}

// ReadByClubID returns the advisor of a club.
func (r *ProfessorRepository) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	const query = `SELECT * FROM Professor WHERE prof_id IN (SELECT prof_id FROM Club WHERE club_id = ?)`
	return r.table.Query(ctx, "read_professor_by_club", query, clubID)
}

// List returns every professor.
func (r *ProfessorRepository) List(ctx context.Context) (*models.ResultSet, error) {
	return r.table.SelectAll(ctx)
}

// UpdateName renames exactly one professor.
func (r *ProfessorRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.table.Update(ctx, models.Attributes{"prof_id": id}, models.Attributes{"name": name})
}

// Delete removes exactly one professor. A professor still advising a club is kept.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	return r.table.InTx(ctx, func(tx *sqlx.Tx) error {
		advised, err := r.clubs.CountTx(ctx, tx, models.Attributes{"prof_id": id})
		if err != nil {
			return err
		}
		if advised > 0 {
			return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("professor %d still advises %d club(s)", id, advised))
		}
		return r.table.DeleteTx(ctx, tx, models.Attributes{"prof_id": id})
	})
}
