package handlers

import (
	"net/http"

	"moveline/models"
	"moveline/services/gateway"
	"moveline/services/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the order wizard over HTTP. All state lives in the
// session store; the handler only binds input and maps service errors to
// status codes.
type OrderHandler struct {
	Svc      order.OrderService
	Payments *gateway.StripePayments
	Logger   *zap.Logger
}

func NewOrderHandler(svc order.OrderService, payments *gateway.StripePayments, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Payments: payments, Logger: logger}
}

// respondError maps service error codes onto HTTP statuses.
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch order.CodeOf(err) {
	case order.CodeSessionNotFound:
		status = http.StatusNotFound
	case order.CodeOperationInProgress, order.CodeStaleOperation:
		status = http.StatusConflict
	case order.CodeValidation:
		status = http.StatusBadRequest
	case order.CodeGateway:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.Logger.Error("Order operation failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSession returns the session together with the live quote for the
// order as currently configured.
func (h *OrderHandler) respondSession(c *gin.Context, sess *models.OrderSession) {
	c.JSON(http.StatusOK, gin.H{
		"sessionID":  sess.SessionID,
		"generation": sess.Generation,
		"order":      sess.Order,
		"quote":      order.CalculatePrice(sess.Order),
	})
}

// StartSession creates a new order session with an empty order.
func (h *OrderHandler) StartSession(c *gin.Context) {
	sess, err := h.Svc.StartSession(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// GetSession returns the current order and quote.
func (h *OrderHandler) GetSession(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// ResetOrder discards the order and returns a fresh one in the same session.
func (h *OrderHandler) ResetOrder(c *gin.Context) {
	sess, err := h.Svc.ResetOrder(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SelectService registers the order with the backend for the chosen service.
func (h *OrderHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceType models.ServiceType `json:"serviceType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SelectService(c.Request.Context(), c.Param("sessionID"), input.ServiceType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// ToggleAddon flips one addon on or off.
func (h *OrderHandler) ToggleAddon(c *gin.Context) {
	var input struct {
		Addon models.Addon `json:"addon" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.ToggleAddon(c.Request.Context(), c.Param("sessionID"), input.Addon)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetBundle enables or disables the all-inclusive bundle.
func (h *OrderHandler) SetBundle(c *gin.Context) {
	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetBundle(c.Request.Context(), c.Param("sessionID"), *input.Enabled)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetPickupLocation stores the pickup address and refreshes the route estimate.
func (h *OrderHandler) SetPickupLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetPickupLocation(c.Request.Context(), c.Param("sessionID"), loc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetDropoffLocation stores the dropoff address and refreshes the route estimate.
func (h *OrderHandler) SetDropoffLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetDropoffLocation(c.Request.Context(), c.Param("sessionID"), loc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// AnalyzePhotos runs the AI volume estimate over the uploaded photos.
func (h *OrderHandler) AnalyzePhotos(c *gin.Context) {
	sess, err := h.Svc.AnalyzePhotos(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetVehicleType overrides the suggested vehicle.
func (h *OrderHandler) SetVehicleType(c *gin.Context) {
	var input struct {
		VehicleType string `json:"vehicleType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetVehicleType(c.Request.Context(), c.Param("sessionID"), input.VehicleType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetNumberOfMovers sets the crew size, clamped to the allowed range.
func (h *OrderHandler) SetNumberOfMovers(c *gin.Context) {
	var input struct {
		Count *int `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetNumberOfMovers(c.Request.Context(), c.Param("sessionID"), *input.Count)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetSchedule updates the scheduled date and/or time slot.
func (h *OrderHandler) SetSchedule(c *gin.Context) {
	var input struct {
		Date     string           `json:"date"`
		TimeSlot *models.TimeSlot `json:"timeSlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Date == "" && input.TimeSlot == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a date or a time slot"})
		return
	}

	ctx := c.Request.Context()
	sessionID := c.Param("sessionID")
	var sess *models.OrderSession
	var err error
	if input.Date != "" {
		if sess, err = h.Svc.SetScheduledDate(ctx, sessionID, input.Date); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if input.TimeSlot != nil {
		if sess, err = h.Svc.SetScheduledTimeSlot(ctx, sessionID, *input.TimeSlot); err != nil {
			h.respondError(c, err)
			return
		}
	}
	h.respondSession(c, sess)
}

// GetAvailability lists bookable time slots for the given date.
func (h *OrderHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.Svc.GetAvailability(c.Request.Context(), c.Param("sessionID"), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// SetCustomerInfo stores the customer's contact details.
func (h *OrderHandler) SetCustomerInfo(c *gin.Context) {
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetCustomerInfo(c.Request.Context(), c.Param("sessionID"), info)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// SetPaymentInfo stores the chosen payment method and card details.
func (h *OrderHandler) SetPaymentInfo(c *gin.Context) {
	var info models.PaymentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SetPaymentInfo(c.Request.Context(), c.Param("sessionID"), info)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// GetPaymentIntent creates a Stripe payment intent for the current quote so
// card payments can be confirmed client side.
func (h *OrderHandler) GetPaymentIntent(c *gin.Context) {
	if h.Payments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "card payments are not configured"})
		return
	}
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if sess.Order.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "select a service before paying"})
		return
	}
	amount := order.CalculatePrice(sess.Order)
	intent, err := h.Payments.CreatePaymentIntent(sess.Order.ID, amount, "usd")
	if err != nil {
		h.Logger.Error("Failed to create payment intent", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create payment intent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret, "amount": amount})
}

// ProcessPayment charges the order and confirms it on success.
func (h *OrderHandler) ProcessPayment(c *gin.Context) {
	sess, err := h.Svc.ProcessPayment(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// GetTracking returns the live delivery state for the confirmed order.
func (h *OrderHandler) GetTracking(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": sess.Order.Tracking})
}

// SubmitRating records post-service feedback.
func (h *OrderHandler) SubmitRating(c *gin.Context) {
	var rating models.Rating
	if err := c.ShouldBindJSON(&rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.SubmitRating(c.Request.Context(), c.Param("sessionID"), rating)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// NextStep advances the wizard one step.
func (h *OrderHandler) NextStep(c *gin.Context) {
	sess, err := h.Svc.NextStep(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// PrevStep moves the wizard one step back.
func (h *OrderHandler) PrevStep(c *gin.Context) {
	sess, err := h.Svc.PrevStep(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}

// GoToStep jumps to an earlier (or the current) wizard step.
func (h *OrderHandler) GoToStep(c *gin.Context) {
	var input struct {
		Step *int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	sess, err := h.Svc.GoToStep(c.Request.Context(), c.Param("sessionID"), *input.Step)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondSession(c, sess)
}
