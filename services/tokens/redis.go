package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/traintrack/traintrack/services/logging"
	"go.uber.org/zap"
)

// RedisStore persists token records as JSON values under "kind:hash" keys
// with a native TTL, so records vanish at their expiry without a sweep.
type RedisStore struct {
	client *redis.Client
	logger *logging.Service
}

func NewRedisStore(client *redis.Client, logger *logging.Service) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisStore) Save(ctx context.Context, rec Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		// Nothing to persist; the record would be evicted immediately.
		return nil
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize token record: %w", err)
	}

	key := storeKey(rec.Kind, rec.TokenHash)
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.logger.Error("failed to store token record in redis", zap.Error(err))
		return fmt.Errorf("failed to store token record: %w", err)
	}

	return nil
}

func (r *RedisStore) FindByHash(ctx context.Context, kind Kind, hash string) (*Record, error) {
	data, err := r.client.Get(ctx, storeKey(kind, hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		r.logger.Error("failed to read token record from redis", zap.Error(err))
		return nil, fmt.Errorf("failed to read token record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to deserialize token record: %w", err)
	}

	return &rec, nil
}

// SetRevoked rewrites the record with revoked=true inside a WATCH
// transaction, keeping the remaining TTL. The optimistic lock makes the
// false-to-true transition an atomic conditional update: a concurrent
// writer on the same key aborts the transaction and the caller's retry
// observes the already-revoked record.
func (r *RedisStore) SetRevoked(ctx context.Context, kind Kind, hash string) error {
	key := storeKey(kind, hash)

	revoke := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read token record: %w", err)
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("failed to deserialize token record: %w", err)
		}

		if rec.Revoked {
			return nil
		}
		rec.Revoked = true

		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to serialize token record: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, redis.KeepTTL)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, revoke, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Lost the race; the other writer already revoked the record.
		return r.client.Watch(ctx, revoke, key)
	}
	return err
}
