package handler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-clubs/internal/models"
	"github.com/noah-isme/sma-clubs/internal/service"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

type fakeClubRepo struct {
	clubs    map[int64]models.Club
	nextID   int64
	updates  []models.Attributes
	joins    []string
	searched []string
	busy     map[int64]bool
}

var clubColumns = []string{"club_id", "club_name", "budget"}

func clubRow(c models.Club) []string {
	return []string{fmt.Sprint(c.ID), c.Name, fmt.Sprint(c.Budget)}
}

func (f *fakeClubRepo) one(id int64) *models.ResultSet {
	result := &models.ResultSet{Columns: clubColumns}
	if c, ok := f.clubs[id]; ok {
		result.Rows = append(result.Rows, clubRow(c))
	}
	return result
}

func (f *fakeClubRepo) Describe(ctx context.Context) (*models.ResultSet, error) {
	return &models.ResultSet{Columns: []string{"Field", "Type"}}, nil
}

func (f *fakeClubRepo) Create(ctx context.Context, club *models.Club) error {
	f.nextID++
	club.ID = f.nextID
	f.clubs[club.ID] = *club
	return nil
}

func (f *fakeClubRepo) FindByID(ctx context.Context, id int64) (*models.Club, error) {
	c, ok := f.clubs[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("club %d not found", id))
	}
	return &c, nil
}

func (f *fakeClubRepo) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	f.searched = append(f.searched, fmt.Sprintf("club_id=%d", id))
	return f.one(id), nil
}

func (f *fakeClubRepo) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	f.searched = append(f.searched, "club_name~"+name)
	result := &models.ResultSet{Columns: clubColumns}
	for _, c := range f.clubs {
		if strings.Contains(c.Name, name) {
			result.Rows = append(result.Rows, clubRow(c))
		}
	}
	return result, nil
}

func (f *fakeClubRepo) ReadByProfessorID(ctx context.Context, profID int64) (*models.ResultSet, error) {
	f.searched = append(f.searched, fmt.Sprintf("prof_id=%d", profID))
	result := &models.ResultSet{Columns: clubColumns}
	for _, c := range f.clubs {
		if c.ProfessorID != nil && *c.ProfessorID == profID {
			result.Rows = append(result.Rows, clubRow(c))
		}
	}
	return result, nil
}

func (f *fakeClubRepo) ReadByLocationID(ctx context.Context, locID int64) (*models.ResultSet, error) {
	f.searched = append(f.searched, fmt.Sprintf("loc_id=%d", locID))
	return &models.ResultSet{Columns: clubColumns}, nil
}

func (f *fakeClubRepo) ReadByLocationName(ctx context.Context, name string) (*models.ResultSet, error) {
	f.searched = append(f.searched, "loc_name~"+name)
	return &models.ResultSet{Columns: clubColumns}, nil
}

func (f *fakeClubRepo) List(ctx context.Context) (*models.ResultSet, error) {
	result := &models.ResultSet{Columns: clubColumns}
	for _, c := range f.clubs {
		result.Rows = append(result.Rows, clubRow(c))
	}
	return result, nil
}

func (f *fakeClubRepo) ReadInfo(ctx context.Context, id int64, joins []string) (*models.ResultSet, error) {
	f.joins = joins
	return f.one(id), nil
}

func (f *fakeClubRepo) ReadMembers(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	f.searched = append(f.searched, fmt.Sprintf("members of %d", clubID))
	return &models.ResultSet{Columns: []string{"student_id", "name"}}, nil
}

func (f *fakeClubRepo) ReadMembersByName(ctx context.Context, clubID int64, name string) (*models.ResultSet, error) {
	f.searched = append(f.searched, fmt.Sprintf("members of %d named %s", clubID, name))
	return &models.ResultSet{Columns: []string{"student_id", "name"}}, nil
}

func (f *fakeClubRepo) Update(ctx context.Context, id int64, values models.Attributes) error {
	f.updates = append(f.updates, values)
	return nil
}

func (f *fakeClubRepo) Delete(ctx context.Context, id int64) error {
	if f.busy[id] {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("club %d still has activities", id))
	}
	if _, ok := f.clubs[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("club %d not found", id))
	}
	delete(f.clubs, id)
	return nil
}

type clubFixture struct {
	clubs   *fakeClubRepo
	members *fakeClubStudentRepo
}

func newClubFixture() *clubFixture {
	advisor := int64(5)
	return &clubFixture{
		clubs: &fakeClubRepo{
			clubs: map[int64]models.Club{
				1: {ID: 1, Name: "Chess", Budget: 100, ProfessorID: &advisor},
				2: {ID: 2, Name: "Hiking", Budget: 250},
			},
			nextID: 2,
			busy:   map[int64]bool{2: true},
		},
		members: &fakeClubStudentRepo{links: []models.ClubStudent{{ClubID: 1, StudentID: 4}}},
	}
}

func (f *clubFixture) run(t *testing.T, script ...string) string {
	t.Helper()
	members := service.NewClubStudentService(f.members, nil, nil)
	clubs := service.NewClubService(f.clubs, members, nil, nil, nil)

	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader(strings.Join(script, "\n")+"\n"), &out, nil)
	require.NoError(t, NewClubMenu(prompt, clubs, nil).Run(context.Background()))
	return out.String()
}

func TestClubMenuSearches(t *testing.T) {
	f := newClubFixture()
	out := f.run(t,
		"1", "0",
		"1", "1", "2",
		"1", "2", "ess",
		"1", "3", "5",
		"1", "4", "8",
		"1", "5", "Gym",
		"5",
	)

	assert.Equal(t, []string{"club_id=2", "club_name~ess", "prof_id=5", "loc_id=8", "loc_name~Gym"}, f.clubs.searched)
	assert.Contains(t, out, "| Hiking ")
	assert.Contains(t, out, "| Chess ")
	assert.Contains(t, out, "2 row(s)")
	assert.Equal(t, 2, strings.Count(out, "0 row(s)"))
}

func TestClubMenuSearchRejectsBadID(t *testing.T) {
	f := newClubFixture()
	out := f.run(t, "1", "1", "0", "5")

	assert.Contains(t, out, "[validation]")
	assert.Empty(t, f.clubs.searched)
}

func TestClubMenuCreate(t *testing.T) {
	f := newClubFixture()
	out := f.run(t,
		"2", "Drama", "75.5", "",
		"2", "Robotics", "lots", "300", "5",
		"5",
	)

	assert.Contains(t, out, "club 3 created")
	assert.Contains(t, out, "club 4 created")
	assert.Contains(t, out, "incorrect input")
	assert.Nil(t, f.clubs.clubs[3].ProfessorID)
	assert.Equal(t, 75.5, f.clubs.clubs[3].Budget)
	require.NotNil(t, f.clubs.clubs[4].ProfessorID)
	assert.Equal(t, int64(5), *f.clubs.clubs[4].ProfessorID)
}

func TestClubMenuCreateRejectsNegativeBudget(t *testing.T) {
	f := newClubFixture()
	out := f.run(t, "2", "Debt", "-1", "", "5")

	assert.Contains(t, out, "[validation]")
	assert.Len(t, f.clubs.clubs, 2)
}

func TestClubMenuDelete(t *testing.T) {
	f := newClubFixture()
	out := f.run(t, "3", "1", "3", "2", "3", "9", "5")

	assert.Contains(t, out, "club 1 deleted")
	assert.Contains(t, out, "[constraint] club 2 still has activities")
	assert.Contains(t, out, "[not_found] club 9 not found")
	assert.NotContains(t, f.clubs.clubs, int64(1))
	assert.Contains(t, f.clubs.clubs, int64(2))
}

func TestClubMenuManageUnknownClub(t *testing.T) {
	out := newClubFixture().run(t, "4", "9", "5")
	assert.Contains(t, out, "[not_found] club 9 not found")
	assert.NotContains(t, out, "Manage club")
}

func TestClubMenuManageMembers(t *testing.T) {
	f := newClubFixture()
	out := f.run(t,
		"4", "1",
		"1",
		"2", "6",
		"2", "4",
		"3", "4",
		"3", "4",
		"1", "0",
		"1", "1", "Ki",
		"4",
		"4",
		"5",
	)

	assert.Contains(t, out, "== Manage club 1 (Chess) ==")
	assert.Contains(t, out, "student 6 joined club 1")
	assert.Contains(t, out, "[constraint] student 4 is already a member of club 1")
	assert.Contains(t, out, "student 4 left club 1")
	assert.Contains(t, out, "[not_found] membership not found")
	assert.Equal(t, []models.ClubStudent{{ClubID: 1, StudentID: 6}}, f.members.links)
	assert.Equal(t, []string{"members of 1", "members of 1 named Ki"}, f.clubs.searched)
}

func TestClubMenuManageDetails(t *testing.T) {
	f := newClubFixture()
	out := f.run(t,
		"4", "1",
		"3",
		"1", "Go club",
		"2", "40",
		"3", "7",
		"3", "0",
		"4",
		"4",
		"5",
	)

	assert.Equal(t, []string{models.JoinProfessor, models.JoinLocation}, f.clubs.joins)
	assert.Equal(t, 5, strings.Count(out, "| Chess "))
	assert.Contains(t, out, "club 1 renamed")
	assert.Contains(t, out, "club 1 budget updated")
	assert.Contains(t, out, "club 1 advisor updated")
	assert.Contains(t, out, "[validation]")
	assert.Equal(t, []models.Attributes{
		{"club_name": "Go club"},
		{"budget": float64(40)},
		{"prof_id": int64(7)},
	}, f.clubs.updates)
}
