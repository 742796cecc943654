package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moveline/models"
	"moveline/services/gateway"
	"moveline/services/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionResponse struct {
	SessionID  string       `json:"sessionID"`
	Generation int          `json:"generation"`
	Order      models.Order `json:"order"`
	Quote      int          `json:"quote"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *order.DefaultOrderService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &order.DefaultOrderService{
		Store:     order.NewMemorySessionStore(),
		Gateway:   gateway.NewSimulatedGateway(0, 0, zap.NewNop()),
		MaxPhotos: 10,
	}
	oh := NewOrderHandler(svc, nil, zap.NewNop())

	r := gin.New()
	api := r.Group("/api/orders")
	api.POST("/session", oh.StartSession)
	session := api.Group("/session/:sessionID")
	session.GET("", oh.GetSession)
	session.DELETE("", oh.ResetOrder)
	session.POST("/service", oh.SelectService)
	session.POST("/bundle", oh.SetBundle)
	session.PUT("/payment-info", oh.SetPaymentInfo)
	session.POST("/pay", oh.ProcessPayment)
	session.PUT("/steps", oh.GoToStep)
	session.POST("/payment-intent", oh.GetPaymentIntent)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var out sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStartAndFetchSession(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeSession(t, w)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, models.FirstStep, created.Order.Step)
	assert.Equal(t, 0, created.Quote)

	w = doJSON(t, r, http.MethodGet, "/api/orders/session/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeSession(t, w)
	assert.Equal(t, created.SessionID, fetched.SessionID)
}

func TestUnknownSessionIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/orders/session/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectServiceUpdatesQuote(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	base := "/api/orders/session/" + created.SessionID

	w := doJSON(t, r, http.MethodPost, base+"/service", gin.H{"serviceType": "home-furniture"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeSession(t, w)
	assert.Equal(t, 150, got.Quote)
	assert.NotEmpty(t, got.Order.ID)

	w = doJSON(t, r, http.MethodPost, base+"/service", gin.H{"serviceType": "teleportation"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoToStepForwardRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	base := "/api/orders/session/" + created.SessionID

	w := doJSON(t, r, http.MethodPut, base+"/steps", gin.H{"step": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/steps", gin.H{"step": 1})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBusySessionIs409(t *testing.T) {
	r, svc := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	base := "/api/orders/session/" + created.SessionID

	ctx := context.Background()
	ok, err := svc.Store.AcquireBusy(ctx, created.SessionID)
	require.NoError(t, err)
	require.True(t, ok)
	defer svc.Store.ReleaseBusy(ctx, created.SessionID)

	w := doJSON(t, r, http.MethodPost, base+"/service", gin.H{"serviceType": "intercity"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPayFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	base := "/api/orders/session/" + created.SessionID

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, base+"/service", gin.H{"serviceType": "home-furniture"}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, base+"/bundle", gin.H{"enabled": true}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPut, base+"/payment-info", gin.H{"method": "cash"}).Code)

	w := doJSON(t, r, http.MethodPost, base+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	paid := decodeSession(t, w)
	assert.Equal(t, 430, paid.Order.TotalPrice)
	assert.Equal(t, models.TrackingConfirmed, paid.Order.Tracking.Status)
}

func TestResetReturnsFreshOrder(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	base := "/api/orders/session/" + created.SessionID

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, base+"/service", gin.H{"serviceType": "intercity"}).Code)

	w := doJSON(t, r, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decodeSession(t, w)
	assert.Equal(t, 1, reset.Generation)
	assert.Empty(t, reset.Order.ID)
	assert.Equal(t, 0, reset.Quote)
}

func TestPaymentIntentUnconfiguredIs503(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeSession(t, doJSON(t, r, http.MethodPost, "/api/orders/session", nil))
	w := doJSON(t, r, http.MethodPost, "/api/orders/session/"+created.SessionID+"/payment-intent", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
