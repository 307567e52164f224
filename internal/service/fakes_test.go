package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func rows(columns []string, values ...[]string) *models.ResultSet {
	return &models.ResultSet{Columns: columns, Rows: values}
}

type fakeStudentRepo struct {
	students map[int64]models.Student
	nextID   int64
	renamed  map[int64]string
	deleted  []int64
	field    string
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]models.Student{}, renamed: map[int64]string{}, nextID: 1}
}

func (f *fakeStudentRepo) Describe(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"Field", "Type", "Null"}, []string{"student_id", "INT", "NO"}), nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) ReadByField(ctx context.Context, field, value string) (*models.ResultSet, error) {
	f.field = field
	return rows([]string{"student_id", "name", "department"}), nil
}

func (f *fakeStudentRepo) SearchByName(ctx context.Context, name string) (*models.ResultSet, error) {
	result := rows([]string{"student_id", "name", "department"})
	for _, s := range f.students {
		if name == "" || s.Name == name {
			result.Rows = append(result.Rows, []string{fmt.Sprint(s.ID), s.Name, s.Department})
		}
	}
	return result, nil
}

func (f *fakeStudentRepo) List(ctx context.Context) (*models.ResultSet, error) {
	return f.SearchByName(ctx, "")
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &s, nil
}

func (f *fakeStudentRepo) UpdateName(ctx context.Context, id int64, name string) error {
	if _, ok := f.students[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	f.renamed[id] = name
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProfessorRepo struct {
	advising map[int64]bool
	deleted  []int64
}

func (f *fakeProfessorRepo) Describe(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"Field", "Type", "Null"}), nil
}

func (f *fakeProfessorRepo) Create(ctx context.Context, professor *models.Professor) error {
	professor.ID = 11
	return nil
}

func (f *fakeProfessorRepo) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return rows([]string{"prof_id", "name"}, []string{fmt.Sprint(id), "Park"}), nil
}

func (f *fakeProfessorRepo) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return rows([]string{"prof_id", "name"}), nil
}

func (f *fakeProfessorRepo) List(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"prof_id", "name"}), nil
}

func (f *fakeProfessorRepo) UpdateName(ctx context.Context, id int64, name string) error {
	return nil
}

func (f *fakeProfessorRepo) Delete(ctx context.Context, id int64) error {
	if f.advising[id] {
		return appErrors.Clone(appErrors.ErrInUse, "professor still advises a club")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeActivityRepo struct {
	activities map[int64]models.Activity
	created    []models.Activity
	updated    map[int64]models.Attributes
	deleted    []int64
	period     models.ActivityPeriod
	title      string
	titleClub  int64
}

func newFakeActivityRepo(activities ...models.Activity) *fakeActivityRepo {
	f := &fakeActivityRepo{activities: map[int64]models.Activity{}, updated: map[int64]models.Attributes{}}
	for _, a := range activities {
		f.activities[a.ID] = a
	}
	return f
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	activity.ID = int64(len(f.activities) + 100)
	f.created = append(f.created, *activity)
	f.activities[activity.ID] = *activity
	return nil
}

func (f *fakeActivityRepo) FindByID(ctx context.Context, id int64) (*models.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "activity not found")
	}
	return &a, nil
}

func (f *fakeActivityRepo) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return rows([]string{"act_id"}, []string{fmt.Sprint(id)}), nil
}

func (f *fakeActivityRepo) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return rows([]string{"act_id"}), nil
}

func (f *fakeActivityRepo) ReadByTitle(ctx context.Context, title string, clubID int64) (*models.ResultSet, error) {
	f.title, f.titleClub = title, clubID
	return rows([]string{"act_id"}), nil
}

func (f *fakeActivityRepo) ReadByPeriod(ctx context.Context, period models.ActivityPeriod) (*models.ResultSet, error) {
	f.period = period
	return rows([]string{"act_id"}), nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, id int64, values models.Attributes) error {
	f.updated[id] = values
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeClubRepo struct {
	created []models.Club
	updated map[int64]models.Attributes
	joins   []string
	deleted []int64
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{updated: map[int64]models.Attributes{}}
}

func (f *fakeClubRepo) Describe(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"Field", "Type", "Null"}), nil
}

func (f *fakeClubRepo) Create(ctx context.Context, club *models.Club) error {
	club.ID = 5
	f.created = append(f.created, *club)
	return nil
}

func (f *fakeClubRepo) FindByID(ctx context.Context, id int64) (*models.Club, error) {
	return &models.Club{ID: id, Name: "Chess"}, nil
}

func (f *fakeClubRepo) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	return rows([]string{"club_id"}, []string{fmt.Sprint(id)}), nil
}

func (f *fakeClubRepo) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return rows([]string{"club_id"}), nil
}

func (f *fakeClubRepo) ReadByProfessorID(ctx context.Context, profID int64) (*models.ResultSet, error) {
	return rows([]string{"club_id"}), nil
}

func (f *fakeClubRepo) ReadByLocationID(ctx context.Context, locID int64) (*models.ResultSet, error) {
	return rows([]string{"club_id"}), nil
}

func (f *fakeClubRepo) ReadByLocationName(ctx context.Context, name string) (*models.ResultSet, error) {
	return rows([]string{"club_id"}), nil
}

func (f *fakeClubRepo) List(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"club_id"}), nil
}

func (f *fakeClubRepo) ReadInfo(ctx context.Context, id int64, joins []string) (*models.ResultSet, error) {
	f.joins = joins
	return rows([]string{"club_id"}, []string{fmt.Sprint(id)}), nil
}

func (f *fakeClubRepo) ReadMembers(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return rows([]string{"student_id"}), nil
}

func (f *fakeClubRepo) ReadMembersByName(ctx context.Context, clubID int64, name string) (*models.ResultSet, error) {
	return rows([]string{"student_id"}), nil
}

func (f *fakeClubRepo) Update(ctx context.Context, id int64, values models.Attributes) error {
	f.updated[id] = values
	return nil
}

func (f *fakeClubRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeClubStudentRepo struct {
	links   map[models.ClubStudent]bool
	deleted []models.ClubStudent
}

func newFakeClubStudentRepo(links ...models.ClubStudent) *fakeClubStudentRepo {
	f := &fakeClubStudentRepo{links: map[models.ClubStudent]bool{}}
	for _, l := range links {
		f.links[l] = true
	}
	return f
}

func (f *fakeClubStudentRepo) Create(ctx context.Context, link models.ClubStudent) error {
	f.links[link] = true
	return nil
}

func (f *fakeClubStudentRepo) Exists(ctx context.Context, link models.ClubStudent) (bool, error) {
	return f.links[link], nil
}

func (f *fakeClubStudentRepo) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	return rows([]string{"club_id", "student_id"}), nil
}

func (f *fakeClubStudentRepo) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return rows([]string{"club_id", "student_id"}), nil
}

func (f *fakeClubStudentRepo) List(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"club_id", "student_id"}), nil
}

func (f *fakeClubStudentRepo) Delete(ctx context.Context, link models.ClubStudent) error {
	f.deleted = append(f.deleted, link)
	delete(f.links, link)
	return nil
}

type fakeGatheringStudentRepo struct {
	created []models.GatheringStudent
	deleted []models.GatheringStudent
}

func (f *fakeGatheringStudentRepo) Create(ctx context.Context, link models.GatheringStudent) error {
	f.created = append(f.created, link)
	return nil
}

func (f *fakeGatheringStudentRepo) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	return rows([]string{"gathering_id", "student_id"}), nil
}

func (f *fakeGatheringStudentRepo) ReadByGatheringID(ctx context.Context, gatheringID int64) (*models.ResultSet, error) {
	return rows([]string{"gathering_id", "student_id"}), nil
}

func (f *fakeGatheringStudentRepo) List(ctx context.Context) (*models.ResultSet, error) {
	return rows([]string{"gathering_id", "student_id"}), nil
}

func (f *fakeGatheringStudentRepo) Delete(ctx context.Context, link models.GatheringStudent) error {
	f.deleted = append(f.deleted, link)
	return nil
}

type fakeGatheringRepo struct {
	created []models.Gathering
	renamed map[int64]string
	deleted []int64
}

func (f *fakeGatheringRepo) Create(ctx context.Context, gathering *models.Gathering) error {
	gathering.ID = 30
	f.created = append(f.created, *gathering)
	return nil
}

func (f *fakeGatheringRepo) FindByID(ctx context.Context, id int64) (*models.Gathering, error) {
	return &models.Gathering{ID: id, ActivityID: 1, Name: "Kickoff"}, nil
}

func (f *fakeGatheringRepo) ReadByActivityID(ctx context.Context, actID int64) (*models.ResultSet, error) {
	return rows([]string{"gathering_id"}), nil
}

func (f *fakeGatheringRepo) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return rows([]string{"gathering_id"}), nil
}

func (f *fakeGatheringRepo) ReadStudents(ctx context.Context, gatheringID int64) (*models.ResultSet, error) {
	return rows([]string{"student_id"}), nil
}

func (f *fakeGatheringRepo) UpdateName(ctx context.Context, id int64, name string) error {
	if f.renamed == nil {
		f.renamed = map[int64]string{}
	}
	f.renamed[id] = name
	return nil
}

func (f *fakeGatheringRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}
