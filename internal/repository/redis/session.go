package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/domain"
	apperrors "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/errors"
)

const keyPrefix = "quote_session:"

// SessionRepository implements repository.QuoteSessionRepository on Redis.
// Each session is a JSON string whose expiry is refreshed on every save.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session store with the given TTL.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

// Get loads a quote session, returning NotFound once it has expired.
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.QuoteSession, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("quote session", id)
		}
		return nil, fmt.Errorf("redis get quote session: %w", err)
	}

	var s domain.QuoteSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal quote session: %w", err)
	}
	return &s, nil
}

// Save stores the session and resets its expiry.
func (r *SessionRepository) Save(ctx context.Context, s *domain.QuoteSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal quote session: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set quote session: %w", err)
	}
	return nil
}

// Delete removes a quote session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del quote session: %w", err)
	}
	return nil
}

// Ping reports whether Redis answers, for readiness checks.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
