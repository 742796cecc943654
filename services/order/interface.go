package order

import (
	"context"

	"moveline/models"
	"moveline/services/gateway"
)

// OrderService is the order wizard's state machine. It is the sole mutation
// surface for the order record: every operation loads the session, applies an
// atomic change, refreshes UpdatedAt and saves. Operations that call the
// gateway hold the session's busy lock for their duration and reject
// concurrent async calls.
type OrderService interface {
	StartSession(ctx context.Context) (*models.OrderSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.OrderSession, error)
	ResetOrder(ctx context.Context, sessionID string) (*models.OrderSession, error)

	SelectService(ctx context.Context, sessionID string, serviceType models.ServiceType) (*models.OrderSession, error)
	ToggleAddon(ctx context.Context, sessionID string, addon models.Addon) (*models.OrderSession, error)
	SetBundle(ctx context.Context, sessionID string, enabled bool) (*models.OrderSession, error)

	SetPickupLocation(ctx context.Context, sessionID string, loc models.Location) (*models.OrderSession, error)
	SetDropoffLocation(ctx context.Context, sessionID string, loc models.Location) (*models.OrderSession, error)

	AddPhoto(ctx context.Context, sessionID string, photo models.UploadedPhoto) (*models.OrderSession, error)
	RemovePhoto(ctx context.Context, sessionID string, photoID string) (*models.OrderSession, error)
	AnalyzePhotos(ctx context.Context, sessionID string) (*models.OrderSession, error)

	SetVehicleType(ctx context.Context, sessionID string, vehicleType string) (*models.OrderSession, error)
	SetNumberOfMovers(ctx context.Context, sessionID string, count int) (*models.OrderSession, error)
	SetScheduledDate(ctx context.Context, sessionID string, date string) (*models.OrderSession, error)
	SetScheduledTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.OrderSession, error)
	GetAvailability(ctx context.Context, sessionID string, date string) ([]models.TimeSlot, error)

	SetCustomerInfo(ctx context.Context, sessionID string, info models.CustomerInfo) (*models.OrderSession, error)
	SetPaymentInfo(ctx context.Context, sessionID string, info models.PaymentInfo) (*models.OrderSession, error)
	ProcessPayment(ctx context.Context, sessionID string) (*models.OrderSession, error)
	SubmitRating(ctx context.Context, sessionID string, rating models.Rating) (*models.OrderSession, error)

	NextStep(ctx context.Context, sessionID string) (*models.OrderSession, error)
	PrevStep(ctx context.Context, sessionID string) (*models.OrderSession, error)
	GoToStep(ctx context.Context, sessionID string, step int) (*models.OrderSession, error)
}

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Store   SessionStore
	Gateway gateway.Gateway
	// Tracker is optional; when set, successful payments schedule background
	// tracking progression.
	Tracker   TrackingScheduler
	MaxPhotos int
}
