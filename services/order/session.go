package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"moveline/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore owns order session persistence and the per-session busy lock
// that makes async operations mutually exclusive.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.OrderSession, error)
	Save(ctx context.Context, sess *models.OrderSession) error
	Delete(ctx context.Context, sessionID string) error
	AcquireBusy(ctx context.Context, sessionID string) (bool, error)
	ReleaseBusy(ctx context.Context, sessionID string) error
}

// RedisSessionStore stores sessions as JSON blobs with a sliding TTL.
type RedisSessionStore struct {
	Client  *redis.Client
	TTL     time.Duration
	BusyTTL time.Duration
}

// NewRedisSessionStore builds a store with the given session TTL. The busy
// lock expires after 30 seconds so a crashed operation cannot wedge a session.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		Client:  client,
		TTL:     ttl,
		BusyTTL: 30 * time.Second,
	}
}

func sessionKey(sessionID string) string { return "order_session:" + sessionID }
func busyKey(sessionID string) string    { return "order_session_busy:" + sessionID }

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	data, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, NewSessionNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order session: %w", err)
	}
	var sess models.OrderSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse order session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.OrderSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal order session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(sess.SessionID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store order session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete order session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) AcquireBusy(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, busyKey(sessionID), "1", s.BusyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	return ok, nil
}

func (s *RedisSessionStore) ReleaseBusy(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, busyKey(sessionID)).Err()
}

// MemorySessionStore keeps sessions in a map. Used by tests and local
// development without Redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.OrderSession
	busy     map[string]bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.OrderSession),
		busy:     make(map[string]bool),
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.OrderSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, NewSessionNotFoundError()
	}
	cp := sess
	return &cp, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sess *models.OrderSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = *sess
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemorySessionStore) AcquireBusy(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[sessionID] {
		return false, nil
	}
	s.busy[sessionID] = true
	return true, nil
}

func (s *MemorySessionStore) ReleaseBusy(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, sessionID)
	return nil
}
