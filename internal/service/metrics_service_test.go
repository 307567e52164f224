package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveQuery("Student", "select", nil, 2*time.Millisecond)
	m.ObserveQuery("Student", "select", nil, 4*time.Millisecond)
	m.ObserveQuery("Student", "update", appErrors.Clone(appErrors.ErrNotFound, "gone"), time.Millisecond)

	snapshot, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"table", "operation", "outcome", "count", "avg_ms"}, snapshot.Columns)
	require.Equal(t, 2, snapshot.Len())
	assert.Equal(t, []string{"Student", "select", "ok", "2", "3.000"}, snapshot.Rows[0])
	assert.Equal(t, []string{"Student", "update", "not_found", "1", "1.000"}, snapshot.Rows[1])
}

func TestMetricsServiceEmptySnapshot(t *testing.T) {
	snapshot, err := NewMetricsService().Snapshot()
	require.NoError(t, err)
	assert.True(t, snapshot.Empty())
}
