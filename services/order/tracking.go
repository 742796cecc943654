package order

import (
	"fmt"

	"moveline/models"
)

// trackingTransitions defines the allowed delivery status flow. Terminal
// states have no outgoing transitions.
var trackingTransitions = map[models.TrackingStatus][]models.TrackingStatus{
	models.TrackingPending:        {models.TrackingConfirmed},
	models.TrackingConfirmed:      {models.TrackingDriverAssigned},
	models.TrackingDriverAssigned: {models.TrackingInTransit},
	models.TrackingInTransit:      {models.TrackingArrived},
	models.TrackingArrived:        {models.TrackingCompleted},
	models.TrackingCompleted:      {},
}

// CanTransitionTracking reports whether from -> to is an allowed status change.
func CanTransitionTracking(from, to models.TrackingStatus) bool {
	if from == to {
		return true
	}
	for _, s := range trackingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextTrackingStatus returns the next status in the delivery flow, or false
// when the current status is terminal.
func NextTrackingStatus(from models.TrackingStatus) (models.TrackingStatus, bool) {
	allowed := trackingTransitions[from]
	if len(allowed) == 0 {
		return from, false
	}
	return allowed[0], true
}

// ApplyTrackingTransition moves the order's tracking status, rejecting
// transitions the table does not allow.
func ApplyTrackingTransition(o *models.Order, to models.TrackingStatus) error {
	from := o.Tracking.Status
	if !CanTransitionTracking(from, to) {
		return fmt.Errorf("invalid tracking transition: %s -> %s", from, to)
	}
	o.Tracking.Status = to
	return nil
}

// TrackingScheduler kicks off background tracking progression once payment
// succeeds. A nil scheduler is allowed; progression is then driven manually.
type TrackingScheduler interface {
	ScheduleProgression(sessionID string) error
}
