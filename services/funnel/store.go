package funnel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shineops/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists funnel sessions between independently rendered steps.
// The five booking views share one logical session through it.
type SessionStore interface {
	Save(ctx context.Context, sess *models.FunnelSession) error
	Get(ctx context.Context, sessionID string) (*models.FunnelSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore keeps sessions in Redis under their session ID with a
// sliding TTL; every save renews it.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a SessionStore over the given Redis client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "funnel:session:" + id
}

func (s *redisSessionStore) Save(ctx context.Context, sess *models.FunnelSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal funnel session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store funnel session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.FunnelSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch funnel session: %w", err)
	}

	var sess models.FunnelSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse funnel session: %w", err)
	}
	return &sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
