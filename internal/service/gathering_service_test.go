package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func TestGatheringServiceLifecycle(t *testing.T) {
	repo := &fakeGatheringRepo{}
	participants := &fakeGatheringStudentRepo{}
	svc := NewGatheringService(repo, NewGatheringStudentService(participants, nil), nil, nil)
	ctx := context.Background()

	gathering, err := svc.Create(ctx, 1, "Kickoff")
	require.NoError(t, err)
	assert.Equal(t, int64(30), gathering.ID)

	require.NoError(t, svc.AddStudent(ctx, 30, 7))
	assert.Equal(t, []models.GatheringStudent{{GatheringID: 30, StudentID: 7}}, participants.created)

	require.NoError(t, svc.RemoveStudent(ctx, 30, 7))
	assert.Equal(t, []models.GatheringStudent{{GatheringID: 30, StudentID: 7}}, participants.deleted)

	require.NoError(t, svc.UpdateName(ctx, 30, "Opening"))
	assert.Equal(t, "Opening", repo.renamed[30])

	require.NoError(t, svc.Delete(ctx, 30))
	assert.Equal(t, []int64{30}, repo.deleted)
}

func TestGatheringServiceValidatesInput(t *testing.T) {
	participants := &fakeGatheringStudentRepo{}
	svc := NewGatheringService(&fakeGatheringRepo{}, NewGatheringStudentService(participants, nil), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 0, "Kickoff")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	_, err = svc.Create(ctx, 1, "")
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))

	err = svc.AddStudent(ctx, 30, -1)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	assert.Empty(t, participants.created)
}
