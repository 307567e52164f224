package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// ClubRepository manages persistence for clubs and their member listings.
type ClubRepository struct {
	table      *Table
	members    *Table
	activities *Table
}

// NewClubRepository constructs a ClubRepository.
func NewClubRepository(tables *Tables) *ClubRepository {
	return &ClubRepository{table: tables.Club, members: tables.ClubStudent, activities: tables.Activity}
}

// Describe returns the Club column metadata.
func (r *ClubRepository) Describe(ctx context.Context) (*models.ResultSet, error) {
	return r.table.Describe(ctx)
}

// Create inserts a club and records its generated id.
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	attrs := models.Attributes{
		"club_name": club.Name,
		"budget":    club.Budget,
	}
	if club.ProfessorID != nil {
		attrs["prof_id"] = *club.ProfessorID
	}
	id, err := r.table.Insert(ctx, attrs)
	if err != nil {
		return err
	}
	club.ID = id
	return nil
}

// FindByID fetches a single club.
func (r *ClubRepository) FindByID(ctx context.Context, id int64) (*models.Club, error) {
	var club models.Club
	const query = `SELECT club_id, club_name, budget, prof_id FROM Club WHERE club_id = ?`
	if err := r.table.Get(ctx, "find_club", &club, query, id); err != nil {
		return nil, err
	}
	return &club, nil
}

// ReadByID returns the club row with id.
func (r *ClubRepository) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"club_id": id})
}

// ReadByName returns clubs whose name contains name.
func (r *ClubRepository) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return r.table.StringSelect(ctx, models.Attributes{"club_name": name})
}

// ReadByProfessorID returns clubs advised by profID.
func (r *ClubRepository) ReadByProfessorID(ctx context.Context, profID int64) (*models.ResultSet, error) {
	return r.table.Select(ctx, models.Attributes{"prof_id": profID})
}

// ReadByLocationID returns clubs that use the location.
func (r *ClubRepository) ReadByLocationID(ctx context.Context, locID int64) (*models.ResultSet, error) {
	const query = `SELECT * FROM Club WHERE club_id IN (SELECT club_id FROM Location WHERE loc_id = ?)`
	return r.table.Query(ctx, "read_club_by_location_id", query, locID)
}

// ReadByLocationName returns clubs using a location whose name contains name.
func (r *ClubRepository) ReadByLocationName(ctx context.Context, name string) (*models.ResultSet, error) {
	const query = `SELECT * FROM Club WHERE club_id IN (SELECT club_id FROM Location WHERE loc_name LIKE ?)`
	return r.table.Query(ctx, "read_club_by_location_name", query, containsPattern(name))
}

// List returns every club.
func (r *ClubRepository) List(ctx context.Context) (*models.ResultSet, error) {
	return r.table.SelectAll(ctx)
}

// ReadInfo returns the club joined with the requested related tables.
func (r *ClubRepository) ReadInfo(ctx context.Context, id int64, joins []string) (*models.ResultSet, error) {
	columns := []string{"c.club_id", "c.club_name", "c.budget", "c.prof_id"}
	var from strings.Builder
	from.WriteString("FROM Club AS c")
	seen := make(map[string]bool, len(joins))
	for _, join := range joins {
		if seen[join] {
			continue
		}
		seen[join] = true
		switch join {
		case models.JoinProfessor:
			columns = append(columns, "p.name AS prof_name")
			from.WriteString(" LEFT JOIN Professor AS p ON p.prof_id = c.prof_id")
		case models.JoinLocation:
			columns = append(columns, "l.loc_id", "l.loc_name")
			from.WriteString(" LEFT JOIN Location AS l ON l.club_id = c.club_id")
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("cannot join %q with Club", join))
		}
	}
	query := fmt.Sprintf("SELECT %s %s WHERE c.club_id = ?", strings.Join(columns, ", "), from.String())
	return r.table.Query(ctx, "read_club_info", query, id)
}

// ReadMembers returns the students belonging to a club.
func (r *ClubRepository) ReadMembers(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	const query = `SELECT s.* FROM Student AS s WHERE s.student_id IN (SELECT cs.student_id FROM Club_Student AS cs WHERE cs.club_id = ?)`
	return r.table.Query(ctx, "read_members", query, clubID)
}

// ReadMembersByName returns club members whose name contains name.
func (r *ClubRepository) ReadMembersByName(ctx context.Context, clubID int64, name string) (*models.ResultSet, error) {
	const query = `SELECT s.* FROM Student AS s WHERE s.student_id IN (SELECT cs.student_id FROM Club_Student AS cs WHERE cs.club_id = ?) AND s.name LIKE ?`
	return r.table.Query(ctx, "read_members_by_name", query, clubID, containsPattern(name))
}

// Update changes the given columns of exactly one club.
func (r *ClubRepository) Update(ctx context.Context, id int64, values models.Attributes) error {
	return r.table.Update(ctx, models.Attributes{"club_id": id}, values)
}

// Delete removes a club and its memberships. A club that still owns
// activities is kept.
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	return r.table.InTx(ctx, func(tx *sqlx.Tx) error {
		owned, err := r.activities.CountTx(ctx, tx, models.Attributes{"club_id": id})
		if err != nil {
			return err
		}
		if owned > 0 {
			return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("club %d still owns %d activit(ies)", id, owned))
		}
		if _, err := r.members.DeleteWhereTx(ctx, tx, models.Attributes{"club_id": id}); err != nil {
			return err
		}
		return r.table.DeleteTx(ctx, tx, models.Attributes{"club_id": id})
	})
}
