package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func TestStudentServiceCreate(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, nil, zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ann", Department: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "Ann", repo.students[1].Name)
}

func TestStudentServiceCreateRequiresName(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Department: "Physics"})
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestStudentServiceUpdateName(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, nil, nil)
	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ann"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateName(context.Background(), 1, "Anna"))
	assert.Equal(t, "Anna", repo.renamed[1])

	err = svc.UpdateName(context.Background(), 9, "Ghost")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindNotFound))

	err = svc.UpdateName(context.Background(), 0, "Zero")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}

func TestStudentServiceReadByFieldRequiresField(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.ReadByField(context.Background(), "", "x")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	_, err = svc.ReadByField(context.Background(), "department", "Art")
	require.NoError(t, err)
	assert.Equal(t, "department", repo.field)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Equal(t, []int64{4}, repo.deleted)
}

func TestProfessorServiceDeleteRefusedWhileAdvising(t *testing.T) {
	repo := &fakeProfessorRepo{advising: map[int64]bool{3: true}}
	svc := NewProfessorService(repo, nil, zap.NewNop())

	err := svc.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInUse)

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Equal(t, []int64{4}, repo.deleted)
}

func TestProfessorServiceCreate(t *testing.T) {
	svc := NewProfessorService(&fakeProfessorRepo{}, nil, nil)

	professor, err := svc.Create(context.Background(), "Park")
	require.NoError(t, err)
	assert.Equal(t, int64(11), professor.ID)

	_, err = svc.Create(context.Background(), "")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
}
