package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	table            *Table
	clubStudents     *Table
	gatheringMembers *Table
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(tables *Tables) *StudentRepository {
	return &StudentRepository{
		table:            tables.Student,
		clubStudents:     tables.ClubStudent,
		gatheringMembers: tables.GatheringStudent,
	}
}

// Describe returns the Student column metadata.
func (r *StudentRepository) Describe(ctx context.Context) (*models.ResultSet, error) {
	return r.table.Describe(ctx)
}

// Create inserts a new student and records its generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	id, err := r.table.Insert(ctx, models.Attributes{
		"name":       student.Name,
		"department": student.Department,
	})
	if err != nil {
		return err
	}
	student.ID = id
	return nil
}

// ReadByField returns students whose field equals value.
func (r *StudentRepository) ReadByField(ctx context.Context, field, value string) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{field: value})
}

// SearchByName returns students whose name contains name.
func (r *StudentRepository) SearchByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return r.table.StringSelect(ctx, models.Attributes{"name": name})
}

// List returns every student.
func (r *StudentRepository) List(ctx context.Context) (*models.ResultSet, error) {
	return r.table.SelectAll(ctx)
}

// FindByID fetches a single student.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	const query = `SELECT student_id, name, department FROM Student WHERE student_id = ?`
	if err := r.table.Get(ctx, "find_student", &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateName renames exactly one student.
func (r *StudentRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.table.Update(ctx, models.Attributes{"student_id": id}, models.Attributes{"name": name})
}

// Delete removes a student together with its club and gathering memberships.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.table.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := r.clubStudents.DeleteWhereTx(ctx, tx, models.Attributes{"student_id": id}); err != nil {
			return err
		}
		if _, err := r.gatheringMembers.DeleteWhereTx(ctx, tx, models.Attributes{"student_id": id}); err != nil {
			return err
		}
		return r.table.DeleteTx(ctx, tx, models.Attributes{"student_id": id})
	})
}
