package order

import (
	"testing"

	"moveline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingFlowIsLinear(t *testing.T) {
	status := models.TrackingPending
	seen := []models.TrackingStatus{status}
	for {
		next, ok := NextTrackingStatus(status)
		if !ok {
			break
		}
		seen = append(seen, next)
		status = next
	}

	assert.Equal(t, []models.TrackingStatus{
		models.TrackingPending,
		models.TrackingConfirmed,
		models.TrackingDriverAssigned,
		models.TrackingInTransit,
		models.TrackingArrived,
		models.TrackingCompleted,
	}, seen)
}

func TestCompletedIsTerminal(t *testing.T) {
	_, ok := NextTrackingStatus(models.TrackingCompleted)
	assert.False(t, ok)
}

func TestCanTransitionTracking(t *testing.T) {
	assert.True(t, CanTransitionTracking(models.TrackingPending, models.TrackingConfirmed))
	assert.True(t, CanTransitionTracking(models.TrackingInTransit, models.TrackingInTransit))

	assert.False(t, CanTransitionTracking(models.TrackingPending, models.TrackingInTransit))
	assert.False(t, CanTransitionTracking(models.TrackingArrived, models.TrackingConfirmed))
}

func TestApplyTrackingTransition(t *testing.T) {
	o := models.NewOrder()

	require.NoError(t, ApplyTrackingTransition(&o, models.TrackingConfirmed))
	assert.Equal(t, models.TrackingConfirmed, o.Tracking.Status)

	err := ApplyTrackingTransition(&o, models.TrackingArrived)
	require.Error(t, err)
	assert.Equal(t, models.TrackingConfirmed, o.Tracking.Status)
}
