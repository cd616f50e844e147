package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salesdesk_backend/internal/intake/domain"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "intake:session:"

// RedisStore keeps sessions as JSON strings with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store over client. A non-positive ttl uses DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// or rediss:// URL.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound(sessionNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to load intake session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode intake session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	key := sessionKey(session.ID)
	next := *session
	next.Version++
	raw, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to encode intake session: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != session.Version {
			return apperr.Conflict(sessionConflictMsg)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		session.Version = next.Version
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return apperr.Conflict(sessionConflictMsg)
	case apperr.Is(err, apperr.KindConflict):
		return err
	default:
		return fmt.Errorf("failed to save intake session: %w", err)
	}
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var head struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return 0, fmt.Errorf("failed to decode intake session: %w", err)
	}
	return head.Version, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete intake session: %w", err)
	}
	if deleted == 0 {
		return apperr.NotFound(sessionNotFoundMsg)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
