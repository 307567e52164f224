package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

type clubFixture struct {
	svc        *ClubService
	clubs      *fakeClubRepo
	members    *fakeClubStudentRepo
	activities *fakeActivityRepo
}

func newClubFixture(activities ...models.Activity) clubFixture {
	clubs := newFakeClubRepo()
	members := newFakeClubStudentRepo(models.ClubStudent{ClubID: 1, StudentID: 7})
	acts := newFakeActivityRepo(activities...)
	svc := NewClubService(clubs, NewClubStudentService(members, nil, nil), NewActivityService(acts, nil, nil), nil, nil)
	return clubFixture{svc: svc, clubs: clubs, members: members, activities: acts}
}

func TestClubServiceCreate(t *testing.T) {
	f := newClubFixture()
	prof := int64(2)

	club, err := f.svc.Create(context.Background(), CreateClubRequest{Name: "Chess", Budget: 120, ProfessorID: &prof})
	require.NoError(t, err)
	assert.Equal(t, int64(5), club.ID)

	_, err = f.svc.Create(context.Background(), CreateClubRequest{Name: "Debt", Budget: -1})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	zero := int64(0)
	_, err = f.svc.Create(context.Background(), CreateClubRequest{Name: "Orphan", ProfessorID: &zero})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	assert.Len(t, f.clubs.created, 1)
}

func TestClubServiceUpdates(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateName(ctx, 1, "Go"))
	assert.Equal(t, models.Attributes{"club_name": "Go"}, f.clubs.updated[1])
	require.NoError(t, f.svc.UpdateBudget(ctx, 1, 50))
	assert.Equal(t, models.Attributes{"budget": 50.0}, f.clubs.updated[1])
	require.NoError(t, f.svc.UpdateProfessor(ctx, 1, 3))
	assert.Equal(t, models.Attributes{"prof_id": int64(3)}, f.clubs.updated[1])

	assert.Error(t, f.svc.UpdateBudget(ctx, 1, -5))
}

func TestClubServiceReadInfoPassesJoins(t *testing.T) {
	f := newClubFixture()

	_, err := f.svc.ReadInfo(context.Background(), 1, models.JoinProfessor, models.JoinLocation)
	require.NoError(t, err)
	assert.Equal(t, []string{models.JoinProfessor, models.JoinLocation}, f.clubs.joins)
}

func TestClubServiceAddMemberRefusesDuplicate(t *testing.T) {
	f := newClubFixture()

	err := f.svc.AddMember(context.Background(), 1, 7)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindConstraint))

	require.NoError(t, f.svc.AddMember(context.Background(), 1, 8))
	assert.True(t, f.members.links[models.ClubStudent{ClubID: 1, StudentID: 8}])

	require.NoError(t, f.svc.DeleteMember(context.Background(), 1, 7))
	assert.Equal(t, []models.ClubStudent{{ClubID: 1, StudentID: 7}}, f.members.deleted)
}

func TestClubServiceActivityOwnership(t *testing.T) {
	f := newClubFixture(models.Activity{ID: 4, ClubID: 1, StartDate: "2024-06-01"})
	ctx := context.Background()

	_, err := f.svc.ReadActivity(ctx, 2, 4)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))

	err = f.svc.UpdateActivity(ctx, 2, 4, map[string]string{"title": "Hijack"})
	require.Error(t, err)
	assert.Empty(t, f.activities.updated)

	err = f.svc.DeleteActivity(ctx, 2, 4)
	require.Error(t, err)
	assert.Empty(t, f.activities.deleted)

	result, err := f.svc.ReadActivity(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	require.NoError(t, f.svc.UpdateActivity(ctx, 1, 4, map[string]string{"title": "Camp"}))
	require.NoError(t, f.svc.DeleteActivity(ctx, 1, 4))
	assert.Equal(t, []int64{4}, f.activities.deleted)
}

func TestClubServiceActivitySearchesAreScoped(t *testing.T) {
	f := newClubFixture()
	ctx := context.Background()

	_, err := f.svc.ReadActivityByTitle(ctx, 3, "Camp")
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.activities.titleClub)

	_, err = f.svc.ReadActivityByPeriod(ctx, 3, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.activities.period.ClubID)

	activity, err := f.svc.CreateActivity(ctx, 3, "Fair", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), activity.ClubID)
}
