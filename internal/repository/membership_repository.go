package repository

import (
	"context"

	"github.com/noah-isme/sma-clubs/internal/models"
)

// ClubStudentRepository manages club membership links.
type ClubStudentRepository struct {
	table *Table
}

// NewClubStudentRepository constructs a ClubStudentRepository.
func NewClubStudentRepository(tables *Tables) *ClubStudentRepository {
	return &ClubStudentRepository{table: tables.ClubStudent}
}

// Create links a student to a club.
func (r *ClubStudentRepository) Create(ctx context.Context, link models.ClubStudent) error {
	_, err := r.table.Insert(ctx, models.Attributes{"club_id": link.ClubID, "student_id": link.StudentID})
	return err
}

// ReadByStudentID returns the memberships of a student.
func (r *ClubStudentRepository) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"student_id": studentID})
}

// ReadByClubID returns the memberships of a club.
func (r *ClubStudentRepository) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"club_id": clubID})
}

// List returns every membership link.
func (r *ClubStudentRepository) List(ctx context.Context) (*models.ResultSet, error) {
	return r.table.SelectAll(ctx)
}

// Exists reports whether the link is already present.
func (r *ClubStudentRepository) Exists(ctx context.Context, link models.ClubStudent) (bool, error) {
	n, err := r.table.Count(ctx, models.Attributes{"club_id": link.ClubID, "student_id": link.StudentID})
	return n > 0, err
}

// Delete removes exactly one link.
func (r *ClubStudentRepository) Delete(ctx context.Context, link models.ClubStudent) error {
	return r.table.Delete(ctx, models.Attributes{"club_id": link.ClubID, "student_id": link.StudentID})
}

// GatheringStudentRepository manages gathering participation links.
type GatheringStudentRepository struct {
	table *Table
}

// NewGatheringStudentRepository constructs a GatheringStudentRepository.
func NewGatheringStudentRepository(tables *Tables) *GatheringStudentRepository {
	return &GatheringStudentRepository{table: tables.GatheringStudent}
}

// Create links a student to a gathering.
func (r *GatheringStudentRepository) Create(ctx context.Context, link models.GatheringStudent) error {
	_, err := r.table.Insert(ctx, models.Attributes{"gathering_id": link.GatheringID, "student_id": link.StudentID})
	return err
}

// ReadByStudentID returns the gatherings a student attends.
func (r *GatheringStudentRepository) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"student_id": studentID})
}

// ReadByGatheringID returns the participant links of a gathering.
func (r *GatheringStudentRepository) ReadByGatheringID(ctx context.Context, gatheringID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"gathering_id": gatheringID})
}

// List returns every participation link.
func (r *GatheringStudentRepository) List(ctx context.Context) (*models.ResultSet, error) {
	return r.table.SelectAll(ctx)
}

// Delete removes exactly one link.
func (r *GatheringStudentRepository) Delete(ctx context.Context, link models.GatheringStudent) error {
	return r.table.Delete(ctx, models.Attributes{"gathering_id": link.GatheringID, "student_id": link.StudentID})
}
