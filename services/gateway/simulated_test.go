package gateway

import (
	"context"
	"testing"
	"time"

	"moveline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway() *SimulatedGateway {
	// Zero latency and failure rate make every call deterministic.
	return NewSimulatedGateway(0, 0, zap.NewNop())
}

func TestCreateOrderReturnsID(t *testing.T) {
	g := newTestGateway()

	res, err := g.CreateOrder(context.Background(), models.ServiceHomeFurniture)
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
}

func TestAnalyzePhotosScalesWithBatchSize(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	photos := func(n int) []models.UploadedPhoto {
		out := make([]models.UploadedPhoto, n)
		for i := range out {
			out[i] = models.UploadedPhoto{ID: "p", FileName: "p.jpg"}
		}
		return out
	}

	small, err := g.AnalyzePhotos(ctx, photos(1))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultVehicleType, small.SuggestedVehicle)
	assert.Equal(t, models.DefaultNumberOfMovers, small.SuggestedMovers)
	assert.False(t, small.DisassemblyNeeded)

	medium, err := g.AnalyzePhotos(ctx, photos(3))
	require.NoError(t, err)
	assert.Equal(t, "Medium Truck", medium.SuggestedVehicle)
	assert.Equal(t, 3, medium.SuggestedMovers)
	assert.True(t, medium.DisassemblyNeeded)

	large, err := g.AnalyzePhotos(ctx, photos(6))
	require.NoError(t, err)
	assert.Equal(t, "Large Truck", large.SuggestedVehicle)
	assert.Equal(t, 4, large.SuggestedMovers)
	assert.Greater(t, large.EstimatedPrice, medium.EstimatedPrice)
}

func TestAnalyzePhotosDelegatesToAnalyzer(t *testing.T) {
	g := newTestGateway()
	want := &models.AIAnalysis{Volume: "1.0 m³"}
	g.Analyzer = analyzerFunc(func(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error) {
		return want, nil
	})

	got, err := g.AnalyzePhotos(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

type analyzerFunc func(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error)

func (f analyzerFunc) AnalyzePhotos(ctx context.Context, photos []models.UploadedPhoto) (*models.AIAnalysis, error) {
	return f(ctx, photos)
}

func TestGetAvailabilityReturnsSixWindows(t *testing.T) {
	g := newTestGateway()

	slots, err := g.GetAvailability(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, "1", slots[0].ID)
	assert.Equal(t, "08:00 - 10:00", slots[0].Time)
}

func TestProcessPaymentValidatesCardNumber(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	_, err := g.ProcessPayment(ctx, "order-1", models.PaymentInfo{
		Method:     models.PaymentCard,
		CardNumber: "4242 4242",
	}, 100)
	assert.ErrorIs(t, err, ErrInvalidCard)

	// Spaces do not count toward the digit check.
	res, err := g.ProcessPayment(ctx, "order-1", models.PaymentInfo{
		Method:     models.PaymentCard,
		CardNumber: "4242 4242 4242 4242",
	}, 100)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.TransactionID)

	// Cash payments skip card validation entirely.
	_, err = g.ProcessPayment(ctx, "order-1", models.PaymentInfo{Method: models.PaymentCash}, 100)
	require.NoError(t, err)
}

func TestSubmitRatingValidatesRange(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	_, err := g.SubmitRating(ctx, "order-1", models.Rating{ServiceRating: 0, StaffRating: 3})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = g.SubmitRating(ctx, "order-1", models.Rating{ServiceRating: 5, StaffRating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	res, err := g.SubmitRating(ctx, "order-1", models.Rating{ServiceRating: 5, StaffRating: 4})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestLatencyHonoursContextCancellation(t *testing.T) {
	g := NewSimulatedGateway(5*time.Second, 0, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.CreateOrder(ctx, models.ServiceHomeFurniture)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
