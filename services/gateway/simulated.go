package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"moveline/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedGateway stands in for the real moving-services backend. Calls take
// a fixed latency and fail at a configurable rate, mirroring how the
// production service behaves under load.
type SimulatedGateway struct {
	Latency     time.Duration
	FailureRate float64
	// Analyzer, when set, replaces the built-in photo analysis heuristic.
	Analyzer PhotoAnalyzer

	logger *zap.Logger
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewSimulatedGateway builds a gateway with the given latency and failure
// rate. A failure rate of 0 makes every call deterministic.
func NewSimulatedGateway(latency time.Duration, failureRate float64, logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		Latency:     latency,
		FailureRate: failureRate,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// sleep waits out the simulated latency, honouring context cancellation.
func (g *SimulatedGateway) sleep(ctx context.Context) error {
	if g.Latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.Latency):
		return nil
	}
}

func (g *SimulatedGateway) shouldFail() bool {
	if g.FailureRate <= 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.FailureRate
}

func (g *SimulatedGateway) chance(p float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < p
}

func (g *SimulatedGateway) CreateOrder(ctx context.Context, serviceType models.ServiceType) (*CreateOrderResult, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	if g.shouldFail() {
		return nil, fmt.Errorf("order service unavailable")
	}
	orderID := uuid.New().String()
	g.logger.Info("simulated backend created order",
		zap.String("orderID", orderID), zap.String("serviceType", string(serviceType)))
	return &CreateOrderResult{OrderID: orderID}, nil
}

func (g *SimulatedGateway) AnalyzePhotos(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error) {
	if g.Analyzer != nil {
		return g.Analyzer.AnalyzePhotos(ctx, photos)
	}
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	if g.shouldFail() {
		return nil, fmt.Errorf("analysis service unavailable")
	}

	// Heuristic estimate scaled by batch size, matching the production
	// estimator's behaviour closely enough for the wizard flow.
	count := len(photos)
	itemCount := count * 4
	volume := fmt.Sprintf("%.1f m³", float64(count)*2.5)

	allTypes := []string{"Furniture", "Boxes", "Electronics", "Appliances", "Fragile items"}
	n := count + 1
	if n > len(allTypes) {
		n = len(allTypes)
	}
	itemTypes := append([]string(nil), allTypes[:n]...)

	suggestedVehicle := models.DefaultVehicleType
	suggestedMovers := models.DefaultNumberOfMovers
	switch {
	case count > 5:
		suggestedVehicle = "Large Truck"
		suggestedMovers = 4
	case count > 2:
		suggestedVehicle = "Medium Truck"
		suggestedMovers = 3
	}

	return &models.AIAnalysis{
		Volume:            volume,
		ItemCount:         itemCount,
		ItemTypes:         itemTypes,
		DisassemblyNeeded: count > 2,
		SuggestedVehicle:  suggestedVehicle,
		SuggestedMovers:   suggestedMovers,
		EstimatedPrice:    150 + count*50 + suggestedMovers*30,
	}, nil
}

func (g *SimulatedGateway) GetAvailability(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	windows := []string{
		"08:00 - 10:00",
		"10:00 - 12:00",
		"12:00 - 14:00",
		"14:00 - 16:00",
		"16:00 - 18:00",
		"18:00 - 20:00",
	}
	slots := make([]models.TimeSlot, 0, len(windows))
	for i, w := range windows {
		slots = append(slots, models.TimeSlot{
			ID:        fmt.Sprintf("%d", i+1),
			Time:      w,
			Available: !g.chance(0.35),
		})
	}
	return slots, nil
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, orderID string, info models.PaymentInfo, amount int) (*PaymentResult, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}

	if info.Method == models.PaymentCard || info.Method == models.PaymentPartial {
		digits := strings.ReplaceAll(info.CardNumber, " ", "")
		if len(digits) < 16 {
			return nil, ErrInvalidCard
		}
	}
	if g.shouldFail() {
		return nil, ErrDeclined
	}

	txn := uuid.New().String()
	g.logger.Info("simulated backend processed payment",
		zap.String("orderID", orderID), zap.Int("amount", amount), zap.String("transactionID", txn))
	return &PaymentResult{
		Success:       true,
		TransactionID: txn,
		InvoiceURL:    "/invoice/" + txn,
	}, nil
}

func (g *SimulatedGateway) SubmitRating(ctx context.Context, orderID string, rating models.Rating) (*RatingResult, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	if rating.ServiceRating < 1 || rating.ServiceRating > 5 ||
		rating.StaffRating < 1 || rating.StaffRating > 5 {
		return nil, ErrInvalidRating
	}
	return &RatingResult{Success: true}, nil
}

func (g *SimulatedGateway) GetTracking(ctx context.Context, orderID string) (*models.OrderTracking, error) {
	if err := g.sleep(ctx); err != nil {
		return nil, err
	}
	return &models.OrderTracking{
		Status:           models.TrackingInTransit,
		DriverName:       "John Smith",
		DriverPhone:      "+1 (555) 123-4567",
		VehicleNumber:    "ML-2024",
		EstimatedArrival: "15 minutes",
		CurrentLocation:  &models.GeoPoint{Lat: 40.7128, Lng: -74.006},
	}, nil
}
