package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/swinck/catalogo-backend/pkg/redis"
)

// RedisStore persists sessions as JSON documents with a TTL, so carts
// survive API restarts and can be shared across instances.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisclient.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return New(), nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess := New()
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		// A corrupt document is abandoned rather than surfaced.
		return New(), nil
	}
	sess.ensureCart()
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.client.SessionKey(sessionID), string(raw), s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.SessionKey(sessionID))
}
