// File: services/order/order.go
package order

import (
	"context"
	"errors"
	"time"

	"moveline/metrics"
	"moveline/models"
	"moveline/services/gateway"
	"moveline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a fresh empty order, assigns it a session ID and
// stores it.
func (s *DefaultOrderService) StartSession(ctx context.Context) (*models.OrderSession, error) {
	sess := &models.OrderSession{
		SessionID: uuid.New().String(),
		Order:     models.NewOrder(),
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns the current session state.
func (s *DefaultOrderService) GetSession(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// ResetOrder replaces the order with a fresh empty one and bumps the session
// generation so in-flight gateway results are discarded on arrival.
func (s *DefaultOrderService) ResetOrder(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Order = models.NewOrder()
	sess.Generation++
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// mutate applies a synchronous change to the order. The change is atomic from
// the caller's point of view: either the full update is saved or the order is
// left untouched.
func (s *DefaultOrderService) mutate(ctx context.Context, sessionID string, apply func(o *models.Order) error) (*models.OrderSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(&sess.Order); err != nil {
		return nil, err
	}
	sess.Order.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// asyncMutate runs a gateway call under the session's busy lock, then folds
// the result into the order. The session is re-loaded after the call returns;
// if it was reset mid-flight (generation changed) the result is discarded.
func (s *DefaultOrderService) asyncMutate(
	ctx context.Context,
	sessionID string,
	call func(ctx context.Context, o models.Order) (func(o *models.Order), error),
) (*models.OrderSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Store.AcquireBusy(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewBusyError()
	}
	defer func() {
		if err := s.Store.ReleaseBusy(ctx, sessionID); err != nil {
			utils.GetLogger().Warn("failed to release session lock",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	generation := sess.Generation
	fold, err := call(ctx, sess.Order)
	if err != nil {
		return nil, err
	}

	cur, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cur.Generation != generation {
		utils.GetLogger().Info("discarding stale gateway result",
			zap.String("sessionID", sessionID), zap.Int("generation", generation))
		return nil, NewStaleError()
	}

	fold(&cur.Order)
	cur.Order.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// SelectService registers the order with the backend and stores the chosen
// service type. On success the wizard advances one step; on failure the order
// is left unchanged.
func (s *DefaultOrderService) SelectService(ctx context.Context, sessionID string, serviceType models.ServiceType) (*models.OrderSession, error) {
	if !IsValidServiceType(serviceType) {
		return nil, NewValidationError("unknown service type: " + string(serviceType))
	}
	return s.asyncMutate(ctx, sessionID, func(ctx context.Context, o models.Order) (func(o *models.Order), error) {
		res, err := s.Gateway.CreateOrder(ctx, serviceType)
		if err != nil {
			return nil, NewGatewayError("failed to create order: " + err.Error())
		}
		metrics.OrdersCreated.Inc()
		return func(o *models.Order) {
			o.ID = res.OrderID
			o.ServiceType = serviceType
			if o.Step < models.LastStep {
				o.Step++
			}
		}, nil
	})
}

// ToggleAddon flips the addon's membership. Any individual toggle clears the
// bundle flag, even when the addon is being added.
func (s *DefaultOrderService) ToggleAddon(ctx context.Context, sessionID string, addon models.Addon) (*models.OrderSession, error) {
	if !IsValidAddon(addon) {
		return nil, NewValidationError("unknown addon: " + string(addon))
	}
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.Addons, o.HasDontWorryBundle = ApplyAddonChange(o.Addons, o.HasDontWorryBundle,
			AddonAction{Kind: ActionToggle, Addon: addon})
		return nil
	})
}

// SetBundle enables or disables the "don't worry" bundle.
func (s *DefaultOrderService) SetBundle(ctx context.Context, sessionID string, enabled bool) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.Addons, o.HasDontWorryBundle = ApplyAddonChange(o.Addons, o.HasDontWorryBundle,
			AddonAction{Kind: ActionSetBundle, Enabled: enabled})
		return nil
	})
}

// refreshRoute recomputes the derived distance and duration from the current
// locations, clearing them when either end lacks coordinates.
func refreshRoute(o *models.Order) {
	est := EstimateRoute(o.PickupLocation, o.DropoffLocation)
	if est == nil {
		o.EstimatedDistance = nil
		o.EstimatedDuration = nil
		return
	}
	o.EstimatedDistance = &est.DistanceKm
	o.EstimatedDuration = &est.DurationMin
}

func (s *DefaultOrderService) SetPickupLocation(ctx context.Context, sessionID string, loc models.Location) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.PickupLocation = &loc
		refreshRoute(o)
		return nil
	})
}

func (s *DefaultOrderService) SetDropoffLocation(ctx context.Context, sessionID string, loc models.Location) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.DropoffLocation = &loc
		refreshRoute(o)
		return nil
	})
}

// AddPhoto appends a photo. Requests beyond the configured capacity are
// silently dropped, leaving the order unchanged.
func (s *DefaultOrderService) AddPhoto(ctx context.Context, sessionID string, photo models.UploadedPhoto) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		if s.MaxPhotos > 0 && len(o.Photos) >= s.MaxPhotos {
			return nil
		}
		if photo.ID == "" {
			photo.ID = uuid.New().String()
		}
		o.Photos = append(o.Photos, photo)
		return nil
	})
}

func (s *DefaultOrderService) RemovePhoto(ctx context.Context, sessionID string, photoID string) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		next := o.Photos[:0:0]
		for _, p := range o.Photos {
			if p.ID != photoID {
				next = append(next, p)
			}
		}
		o.Photos = next
		return nil
	})
}

// AnalyzePhotos sends the photo batch to the backend. On success the analysis
// is stored and its vehicle and mover suggestions overwrite the current
// values; at this point in the flow, suggestions always win.
func (s *DefaultOrderService) AnalyzePhotos(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	return s.asyncMutate(ctx, sessionID, func(ctx context.Context, o models.Order) (func(o *models.Order), error) {
		if len(o.Photos) == 0 {
			return nil, NewValidationError("no photos to analyze")
		}
		analysis, err := s.Gateway.AnalyzePhotos(ctx, o.Photos)
		if err != nil {
			return nil, NewGatewayError("failed to analyze photos: " + err.Error())
		}
		metrics.PhotoAnalyses.Inc()
		return func(o *models.Order) {
			o.AIAnalysis = analysis
			if analysis.SuggestedVehicle != "" {
				o.VehicleType = analysis.SuggestedVehicle
			}
			if analysis.SuggestedMovers > 0 {
				o.NumberOfMovers = clampMovers(analysis.SuggestedMovers)
			}
			for i := range o.Photos {
				o.Photos[i].Analyzed = true
			}
		}, nil
	})
}

func (s *DefaultOrderService) SetVehicleType(ctx context.Context, sessionID string, vehicleType string) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.VehicleType = vehicleType
		return nil
	})
}

func clampMovers(n int) int {
	if n < models.MinMovers {
		return models.MinMovers
	}
	if n > models.MaxMovers {
		return models.MaxMovers
	}
	return n
}

func (s *DefaultOrderService) SetNumberOfMovers(ctx context.Context, sessionID string, count int) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.NumberOfMovers = clampMovers(count)
		return nil
	})
}

func (s *DefaultOrderService) SetScheduledDate(ctx context.Context, sessionID string, date string) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.ScheduledDate = date
		return nil
	})
}

func (s *DefaultOrderService) SetScheduledTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.ScheduledTimeSlot = &slot
		return nil
	})
}

// GetAvailability fetches the bookable slots for a date. Read-only: it does
// not take the busy lock or touch the order.
func (s *DefaultOrderService) GetAvailability(ctx context.Context, sessionID string, date string) ([]models.TimeSlot, error) {
	if date == "" {
		return nil, NewValidationError("date is required")
	}
	if _, err := s.Store.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	slots, err := s.Gateway.GetAvailability(ctx, date)
	if err != nil {
		return nil, NewGatewayError("failed to fetch availability: " + err.Error())
	}
	return slots, nil
}

func (s *DefaultOrderService) SetCustomerInfo(ctx context.Context, sessionID string, info models.CustomerInfo) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.CustomerInfo = info
		return nil
	})
}

func (s *DefaultOrderService) SetPaymentInfo(ctx context.Context, sessionID string, info models.PaymentInfo) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		o.PaymentInfo = &info
		return nil
	})
}

// ProcessPayment charges the stored payment info for the current computed
// price. On success the price is committed as TotalPrice and tracking moves
// to confirmed; on failure nothing is committed and the error is returned so
// the caller can keep the user on the payment step.
func (s *DefaultOrderService) ProcessPayment(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	sess, err := s.asyncMutate(ctx, sessionID, func(ctx context.Context, o models.Order) (func(o *models.Order), error) {
		if o.ID == "" {
			return nil, NewValidationError("order has not been created yet")
		}
		if o.PaymentInfo == nil {
			return nil, NewValidationError("payment details are missing")
		}
		amount := CalculatePrice(o)
		res, err := s.Gateway.ProcessPayment(ctx, o.ID, *o.PaymentInfo, amount)
		if err != nil {
			metrics.PaymentsFailed.Inc()
			if errors.Is(err, gateway.ErrInvalidCard) || errors.Is(err, gateway.ErrInvalidRating) {
				return nil, NewValidationError(err.Error())
			}
			return nil, NewGatewayError("payment failed: " + err.Error())
		}
		metrics.PaymentsProcessed.Inc()
		return func(o *models.Order) {
			// Recompute at fold time so the committed snapshot matches the
			// fields actually saved.
			o.TotalPrice = CalculatePrice(*o)
			o.Tracking.Status = models.TrackingConfirmed
			utils.GetLogger().Info("payment confirmed",
				zap.String("orderID", o.ID), zap.Int("total", o.TotalPrice),
				zap.String("transactionID", res.TransactionID))
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.Tracker != nil {
		if err := s.Tracker.ScheduleProgression(sessionID); err != nil {
			utils.GetLogger().Error("failed to schedule tracking progression",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return sess, nil
}

// SubmitRating validates and stores the post-service rating.
func (s *DefaultOrderService) SubmitRating(ctx context.Context, sessionID string, rating models.Rating) (*models.OrderSession, error) {
	return s.asyncMutate(ctx, sessionID, func(ctx context.Context, o models.Order) (func(o *models.Order), error) {
		res, err := s.Gateway.SubmitRating(ctx, o.ID, rating)
		if err != nil {
			if errors.Is(err, gateway.ErrInvalidRating) {
				return nil, NewValidationError(err.Error())
			}
			return nil, NewGatewayError("failed to submit rating: " + err.Error())
		}
		_ = res
		return func(o *models.Order) {
			o.Rating = &rating
		}, nil
	})
}

// NextStep advances the wizard one step, clamped to the last step.
func (s *DefaultOrderService) NextStep(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		if o.Step < models.LastStep {
			o.Step++
		}
		return nil
	})
}

// PrevStep moves the wizard back one step, clamped to the first step.
func (s *DefaultOrderService) PrevStep(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		if o.Step > models.FirstStep {
			o.Step--
		}
		return nil
	})
}

// GoToStep jumps directly to a step. Only backward (or same-step) jumps are
// allowed; progressing forward must go through NextStep.
func (s *DefaultOrderService) GoToStep(ctx context.Context, sessionID string, step int) (*models.OrderSession, error) {
	if step < models.FirstStep || step > models.LastStep {
		return nil, NewValidationError("step out of range")
	}
	return s.mutate(ctx, sessionID, func(o *models.Order) error {
		if step > o.Step {
			return NewValidationError("cannot jump forward past the current step")
		}
		o.Step = step
		return nil
	})
}
