package models

// TrackingStatus is the delivery lifecycle state of a confirmed order.
type TrackingStatus string

const (
	TrackingPending        TrackingStatus = "pending"
	TrackingConfirmed      TrackingStatus = "confirmed"
	TrackingDriverAssigned TrackingStatus = "driver-assigned"
	TrackingInTransit      TrackingStatus = "in-transit"
	TrackingArrived        TrackingStatus = "arrived"
	TrackingCompleted      TrackingStatus = "completed"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderTracking carries the live delivery state shown on the tracking step.
// Driver fields are populated once a driver has been assigned.
type OrderTracking struct {
	Status           TrackingStatus `json:"status"`
	DriverName       string         `json:"driverName,omitempty"`
	DriverPhone      string         `json:"driverPhone,omitempty"`
	VehicleNumber    string         `json:"vehicleNumber,omitempty"`
	EstimatedArrival string         `json:"estimatedArrival,omitempty"`
	CurrentLocation  *GeoPoint      `json:"currentLocation,omitempty"`
}
