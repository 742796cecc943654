package order

import (
	"math"

	"moveline/models"
)

// RouteEstimate is the derived distance and duration between pickup and
// dropoff.
type RouteEstimate struct {
	DistanceKm  int `json:"distanceKm"`
	DurationMin int `json:"durationMin"`
}

// EstimateRoute computes the great-circle distance between the two locations,
// rounded to the nearest kilometre, with duration approximated at two minutes
// per kilometre. Returns nil unless both locations carry coordinates.
func EstimateRoute(pickup, dropoff *models.Location) *RouteEstimate {
	if !pickup.HasCoordinates() || !dropoff.HasCoordinates() {
		return nil
	}
	distance := int(math.Round(haversine(*pickup.Lat, *pickup.Lng, *dropoff.Lat, *dropoff.Lng)))
	return &RouteEstimate{
		DistanceKm:  distance,
		DurationMin: distance * 2,
	}
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
