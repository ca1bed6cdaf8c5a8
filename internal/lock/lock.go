// Package lock provides keyed mutual exclusion for settlement claims across
// service instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyHeld is returned when the lock for a key is held elsewhere.
// Callers fail fast on it rather than blocking or retrying.
var ErrAlreadyHeld = errors.New("lock already held")

// Handle represents an acquired lock. The lock self-expires after its TTL
// if Release is never called.
type Handle interface {
	Release(ctx context.Context) error
}

// Locker acquires keyed locks with a bounded TTL.
type Locker interface {
	// Acquire attempts to take the lock once, without retrying. It returns
	// ErrAlreadyHeld when another holder has the key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Handle, error)
}

// SettlementKey derives the stable lock key for an ordered settlement pair
// within a group. The swapped direction is deliberately a different key:
// (A,B) and (B,A) represent independent debts.
func SettlementKey(groupID, fromID, toID uuid.UUID) string {
	return fmt.Sprintf("settle:%s:%s:%s", groupID, fromID, toID)
}
