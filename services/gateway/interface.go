package gateway

import (
	"context"
	"errors"

	"moveline/models"
)

// Validation failures surfaced by the backend. Callers can distinguish these
// from transient service failures with errors.Is.
var (
	ErrInvalidCard   = errors.New("invalid card number")
	ErrDeclined      = errors.New("payment declined")
	ErrInvalidRating = errors.New("invalid rating")
)

// CreateOrderResult is returned when the backend registers a new order.
type CreateOrderResult struct {
	OrderID string `json:"orderId"`
}

// PaymentResult is returned on a successful charge.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	InvoiceURL    string `json:"invoiceUrl"`
}

// RatingResult acknowledges a submitted rating.
type RatingResult struct {
	Success bool `json:"success"`
}

// Gateway is the asynchronous backend boundary the order state machine calls.
// Implementations must either complete the operation or return an error
// without side effects the caller has to undo.
type Gateway interface {
	CreateOrder(ctx context.Context, serviceType models.ServiceType) (*CreateOrderResult, error)
	AnalyzePhotos(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error)
	GetAvailability(ctx context.Context, date string) ([]models.TimeSlot, error)
	ProcessPayment(ctx context.Context, orderID string, info models.PaymentInfo, amount int) (*PaymentResult, error)
	SubmitRating(ctx context.Context, orderID string, rating models.Rating) (*RatingResult, error)
	GetTracking(ctx context.Context, orderID string) (*models.OrderTracking, error)
}

// PhotoAnalyzer produces an AIAnalysis for a photo batch. The simulated
// gateway delegates to one when configured (e.g. the Gemini-backed analyzer),
// falling back to its built-in heuristic otherwise.
type PhotoAnalyzer interface {
	AnalyzePhotos(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error)
}
