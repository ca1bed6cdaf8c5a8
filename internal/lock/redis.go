package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisLocker implements Locker on top of Redis using redsync. Acquisition
// is single-try: contention surfaces immediately as ErrAlreadyHeld and the
// retry decision stays with the caller.
type RedisLocker struct {
	redsync *redsync.Redsync
}

// NewRedisLocker creates a lock manager backed by the given Redis client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{redsync: redsync.New(pool)}
}

// Acquire takes the lock for key with the given TTL, trying exactly once.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Handle, error) {
	mutex := l.redsync.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) || errors.Is(err, redsync.ErrFailed) {
			log.Debug().Str("key", key).Msg("Lock already held")
			return nil, ErrAlreadyHeld
		}
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	return &redisHandle{mutex: mutex, key: key}, nil
}

type redisHandle struct {
	mutex *redsync.Mutex
	key   string
}

// Release unlocks the mutex. An expired lock is not an error for the
// caller; the TTL already did the job.
func (h *redisHandle) Release(ctx context.Context) error {
	ok, err := h.mutex.UnlockContext(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", h.key).Msg("Failed to release lock")
		return err
	}
	if !ok {
		log.Warn().Str("key", h.key).Msg("Lock was not held or already expired")
	}
	return nil
}
