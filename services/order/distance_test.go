package order

import (
	"testing"

	"moveline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func locationAt(lat, lng float64) *models.Location {
	return &models.Location{Address: "somewhere", Lat: floatPtr(lat), Lng: floatPtr(lng)}
}

func TestEstimateRouteNearbyPoints(t *testing.T) {
	pickup := locationAt(24.7136, 46.6753)
	dropoff := locationAt(24.7500, 46.7000)

	est := EstimateRoute(pickup, dropoff)
	require.NotNil(t, est)

	assert.Equal(t, 5, est.DistanceKm)
	assert.Equal(t, est.DistanceKm*2, est.DurationMin)
}

func TestEstimateRouteSymmetric(t *testing.T) {
	a := locationAt(40.7128, -74.006)
	b := locationAt(42.3601, -71.0589)

	ab := EstimateRoute(a, b)
	ba := EstimateRoute(b, a)
	require.NotNil(t, ab)
	require.NotNil(t, ba)

	assert.Equal(t, ab.DistanceKm, ba.DistanceKm)
	assert.Greater(t, ab.DistanceKm, 0)
}

func TestEstimateRouteSamePoint(t *testing.T) {
	a := locationAt(24.7136, 46.6753)
	b := locationAt(24.7136, 46.6753)

	est := EstimateRoute(a, b)
	require.NotNil(t, est)
	assert.Equal(t, 0, est.DistanceKm)
	assert.Equal(t, 0, est.DurationMin)
}

func TestEstimateRouteMissingCoordinates(t *testing.T) {
	withCoords := locationAt(24.7136, 46.6753)
	noCoords := &models.Location{Address: "not geocoded yet"}

	assert.Nil(t, EstimateRoute(withCoords, noCoords))
	assert.Nil(t, EstimateRoute(noCoords, withCoords))
	assert.Nil(t, EstimateRoute(nil, withCoords))
	assert.Nil(t, EstimateRoute(withCoords, nil))
}
