package impl

import (
	"context"
	"testing"

	"geolink/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerService_ReportSetsCurrentAndQueues(t *testing.T) {
	svc := NewTrackerService()
	ctx := context.Background()

	fix := entity.Fix{Lat: -23.55, Lng: -46.63, Accuracy: 12}
	require.NoError(t, svc.Report(ctx, fix))

	current, ok := svc.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, fix, current)

	select {
	case queued := <-svc.Fixes():
		assert.Equal(t, fix, queued)
	default:
		t.Fatal("fix was not queued")
	}
}

func TestTrackerService_NoFixByDefault(t *testing.T) {
	svc := NewTrackerService()

	_, ok := svc.Current(context.Background())
	assert.False(t, ok)
}

func TestTrackerService_RejectsInvalidCoordinates(t *testing.T) {
	svc := NewTrackerService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Report(ctx, entity.Fix{Lat: 91}), ErrInvalidCoordinates)
	assert.ErrorIs(t, svc.Report(ctx, entity.Fix{Lng: -181}), ErrInvalidCoordinates)

	_, ok := svc.Current(ctx)
	assert.False(t, ok)
}

func TestTrackerService_LatestReportWins(t *testing.T) {
	svc := NewTrackerService()
	ctx := context.Background()

	require.NoError(t, svc.Report(ctx, entity.Fix{Lat: 1, Lng: 1}))
	require.NoError(t, svc.Report(ctx, entity.Fix{Lat: 2, Lng: 2}))

	current, ok := svc.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, entity.Fix{Lat: 2, Lng: 2}, current)
}

func TestTrackerService_FullQueueDoesNotBlock(t *testing.T) {
	svc := NewTrackerService()
	ctx := context.Background()

	for i := 0; i < fixQueueSize+5; i++ {
		require.NoError(t, svc.Report(ctx, entity.Fix{Lat: float64(i) / 100, Lng: 0}))
	}

	current, ok := svc.Current(ctx)
	require.True(t, ok)
	assert.InDelta(t, float64(fixQueueSize+4)/100, current.Lat, 1e-9)
}

func TestTrackerService_RecenterIsOneShot(t *testing.T) {
	svc := NewTrackerService()
	ctx := context.Background()

	assert.False(t, svc.ConsumeRecenter(ctx))

	svc.RequestRecenter(ctx)
	assert.True(t, svc.ConsumeRecenter(ctx))
	assert.False(t, svc.ConsumeRecenter(ctx))
}
