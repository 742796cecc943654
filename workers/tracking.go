package workers

import (
	"context"
	"encoding/json"
	"time"

	"moveline/config"
	"moveline/models"
	"moveline/services/gateway"
	"moveline/services/order"
	"moveline/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTrackingAdvance = "tracking:advance"

// trackingPayload identifies the session whose tracking status should move
// forward. Generation pins the payload to the order that scheduled it so a
// reset session is not advanced by a stale task.
type trackingPayload struct {
	SessionID  string `json:"sessionId"`
	Generation int    `json:"generation"`
}

// TrackingScheduler enqueues tracking progression tasks. It implements
// order.TrackingScheduler.
type TrackingScheduler struct {
	Client   *asynq.Client
	Store    order.SessionStore
	Interval time.Duration
}

// NewTrackingScheduler builds a scheduler on the configured queue Redis DB.
func NewTrackingScheduler(store order.SessionStore, interval time.Duration) *TrackingScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &TrackingScheduler{Client: client, Store: store, Interval: interval}
}

// ScheduleProgression enqueues the first advance task for the session.
func (s *TrackingScheduler) ScheduleProgression(sessionID string) error {
	sess, err := s.Store.Get(context.Background(), sessionID)
	if err != nil {
		return err
	}
	return s.enqueue(sessionID, sess.Generation)
}

func (s *TrackingScheduler) enqueue(sessionID string, generation int) error {
	b, err := json.Marshal(trackingPayload{SessionID: sessionID, Generation: generation})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeTrackingAdvance, b)
	_, err = s.Client.Enqueue(task, asynq.ProcessIn(s.Interval))
	return err
}

// RunTrackingWorker starts the asynq server that drives tracking progression
// in the background. It returns immediately.
func RunTrackingWorker(store order.SessionStore, gw gateway.Gateway, interval time.Duration) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	scheduler := &TrackingScheduler{
		Client:   asynq.NewClient(redisOpts),
		Store:    store,
		Interval: interval,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTrackingAdvance, handleTrackingAdvance(store, gw, scheduler))

	go func() {
		logger.Info("Starting tracking worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("Tracking worker stopped", zap.Error(err))
		}
	}()
}

// handleTrackingAdvance moves the session's tracking status one step along
// the delivery flow and re-enqueues itself until the order completes.
func handleTrackingAdvance(store order.SessionStore, gw gateway.Gateway, scheduler *TrackingScheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p trackingPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid tracking payload", zap.Error(err))
			return err
		}

		sess, err := store.Get(ctx, p.SessionID)
		if err != nil {
			// Session expired or was deleted; nothing to advance.
			logger.Debug("Tracking task dropped, session gone", zap.String("sessionID", p.SessionID))
			return nil
		}
		if sess.Generation != p.Generation {
			logger.Debug("Tracking task dropped, order was reset", zap.String("sessionID", p.SessionID))
			return nil
		}

		next, ok := order.NextTrackingStatus(sess.Order.Tracking.Status)
		if !ok {
			return nil
		}
		if err := order.ApplyTrackingTransition(&sess.Order, next); err != nil {
			logger.Warn("Tracking transition rejected", zap.Error(err))
			return nil
		}

		if next == models.TrackingDriverAssigned {
			if tracking, err := gw.GetTracking(ctx, sess.Order.ID); err == nil {
				tracking.Status = next
				sess.Order.Tracking = *tracking
			} else {
				logger.Warn("Failed to fetch driver details", zap.Error(err))
			}
		}

		sess.Order.UpdatedAt = time.Now().UTC()
		if err := store.Save(ctx, sess); err != nil {
			return err
		}

		logger.Info("Tracking status advanced",
			zap.String("sessionID", p.SessionID),
			zap.String("status", string(next)))

		if next != models.TrackingCompleted {
			return scheduler.enqueue(p.SessionID, p.Generation)
		}
		return nil
	}
}
