package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryImpl implements domain.SessionRepository using Redis
type SessionRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository. Keys expire after ttl.
func NewSessionRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{client: client, ttl: ttl}
}

// SessionKey returns the Redis key a session is stored under
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, SessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return domain.Persistence("store session", err)
	}
	return nil
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := SessionKey(sessionID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.Persistence("load session", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return domain.Persistence("delete session", err)
	}
	return nil
}

// DeleteExpired implements domain.SessionRepository. Redis expires keys itself.
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) error {
	return nil
}
