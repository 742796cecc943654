package models

import "time"

// ServiceType identifies one of the moving services a customer can book.
type ServiceType string

const (
	ServiceHomeFurniture  ServiceType = "home-furniture"
	ServiceIntercity      ServiceType = "intercity"
	ServiceMovingStorage  ServiceType = "moving-storage"
	ServiceOfficeBusiness ServiceType = "office-business"
)

// Addon is an optional discrete moving service added on top of the base service.
type Addon string

const (
	AddonPacking        Addon = "packing"
	AddonLoading        Addon = "loading"
	AddonTransportation Addon = "transportation"
	AddonUnloading      Addon = "unloading"
	AddonUnpacking      Addon = "unpacking"
	AddonDisassembly    Addon = "disassembly"
)

// AllAddons lists every addon, in catalog order. The "don't worry" bundle is
// equivalent to selecting all of them.
var AllAddons = []Addon{
	AddonPacking,
	AddonLoading,
	AddonTransportation,
	AddonUnloading,
	AddonUnpacking,
	AddonDisassembly,
}

// Location is a pickup or dropoff address. Coordinates are optional until the
// address has been geocoded by the client.
type Location struct {
	Address string   `json:"address"`
	City    string   `json:"city"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Lat != nil && l.Lng != nil
}

// UploadedPhoto is one photo attached to the order for volume estimation.
type UploadedPhoto struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Preview  string `json:"preview"`
	Analyzed bool   `json:"analyzed"`
}

// TimeSlot is one bookable window on the scheduled date.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// CustomerInfo holds the contact details collected at step 7.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

// Rating is the post-service feedback collected at the final step.
type Rating struct {
	ServiceRating int    `json:"serviceRating"`
	StaffRating   int    `json:"staffRating"`
	Feedback      string `json:"feedback"`
}

// Wizard step bounds and defaults.
const (
	FirstStep = 1
	LastStep  = 10

	DefaultVehicleType    = "Van"
	DefaultNumberOfMovers = 2
	MinMovers             = 1
	MaxMovers             = 8
)

// Order is the single mutable record representing one in-progress booking.
// It is owned by the order state machine and mutated only through its
// operations.
type Order struct {
	ID                 string          `json:"id"`
	Step               int             `json:"step"`
	ServiceType        ServiceType     `json:"serviceType,omitempty"`
	Addons             []Addon         `json:"addons"`
	HasDontWorryBundle bool            `json:"hasDontWorryBundle"`
	PickupLocation     *Location       `json:"pickupLocation,omitempty"`
	DropoffLocation    *Location       `json:"dropoffLocation,omitempty"`
	EstimatedDistance  *int            `json:"estimatedDistance,omitempty"`
	EstimatedDuration  *int            `json:"estimatedDuration,omitempty"`
	Photos             []UploadedPhoto `json:"photos"`
	AIAnalysis         *AIAnalysis     `json:"aiAnalysis,omitempty"`
	VehicleType        string          `json:"vehicleType"`
	NumberOfMovers     int             `json:"numberOfMovers"`
	ScheduledDate      string          `json:"scheduledDate,omitempty"`
	ScheduledTimeSlot  *TimeSlot       `json:"scheduledTimeSlot,omitempty"`
	CustomerInfo       CustomerInfo    `json:"customerInfo"`
	PaymentInfo        *PaymentInfo    `json:"paymentInfo,omitempty"`
	Tracking           OrderTracking   `json:"tracking"`
	Rating             *Rating         `json:"rating,omitempty"`
	TotalPrice         int             `json:"totalPrice"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NewOrder returns a fresh empty order positioned at the first wizard step.
func NewOrder() Order {
	now := time.Now()
	return Order{
		Step:           FirstStep,
		Addons:         []Addon{},
		Photos:         []UploadedPhoto{},
		VehicleType:    DefaultVehicleType,
		NumberOfMovers: DefaultNumberOfMovers,
		Tracking:       OrderTracking{Status: TrackingPending},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// HasAddon reports whether the addon is currently selected.
func (o *Order) HasAddon(a Addon) bool {
	for _, cur := range o.Addons {
		if cur == a {
			return true
		}
	}
	return false
}

// OrderSession wraps an order with its session identity. The generation
// counter is bumped on every reset so that late gateway responses from an
// abandoned operation can be detected and discarded.
type OrderSession struct {
	SessionID  string `json:"sessionId"`
	Generation int    `json:"generation"`
	Order      Order  `json:"order"`
}
