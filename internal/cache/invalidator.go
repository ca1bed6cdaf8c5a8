// Package cache emits invalidation signals for the external balance cache.
// This core never reads or writes cached values itself.
package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Invalidator signals that cached balances for a group and its affected
// members are stale. Implementations are fire-and-forget: failures must not
// propagate to the caller.
type Invalidator interface {
	InvalidateBalances(ctx context.Context, groupID uuid.UUID, memberIDs ...uuid.UUID)
}

// RedisInvalidator deletes the balance cache keys consumed by the caching
// layer.
type RedisInvalidator struct {
	client *redis.Client
}

// NewRedisInvalidator creates an Invalidator backed by the given client.
func NewRedisInvalidator(client *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{client: client}
}

// InvalidateBalances drops the group key and one key per member. Errors are
// logged and swallowed; a missed invalidation only means a slightly stale
// read until the cache TTL expires.
func (r *RedisInvalidator) InvalidateBalances(ctx context.Context, groupID uuid.UUID, memberIDs ...uuid.UUID) {
	keys := make([]string, 0, len(memberIDs)+1)
	keys = append(keys, fmt.Sprintf("balances:group:%s", groupID))
	for _, id := range memberIDs {
		keys = append(keys, fmt.Sprintf("balances:member:%s", id))
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Str("group_id", groupID.String()).Msg("Failed to invalidate balance cache")
	}
}
