package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-clubs/internal/models"
)

// Tables holds one accessor per owned table, all sharing a single connection.
type Tables struct {
	Student          *Table
	Professor        *Table
	Club             *Table
	Activity         *Table
	Gathering        *Table
	ClubStudent      *Table
	GatheringStudent *Table
}

// NewTables introspects every owned table once.
func NewTables(ctx context.Context, db *sqlx.DB, opts ...TableOption) *Tables {
	return &Tables{
		Student:          NewTable(ctx, db, models.TableStudent, "student_id", opts...),
		Professor:        NewTable(ctx, db, models.TableProfessor, "prof_id", opts...),
		Club:             NewTable(ctx, db, models.TableClub, "club_id", opts...),
		Activity:         NewTable(ctx, db, models.TableActivity, "act_id", opts...),
		Gathering:        NewTable(ctx, db, models.TableGathering, "gathering_id", opts...),
		ClubStudent:      NewTable(ctx, db, models.TableClubStudent, "", opts...),
		GatheringStudent: NewTable(ctx, db, models.TableGatheringStudent, "", opts...),
	}
}
