// internal/sync/dedupe.go
package sync

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const seenKeyPrefix = "booking-sync:seen:"

// Dedupe remembers which Message-IDs earlier passes already reconciled,
// so an overlapping mailbox window does not re-invoke the oracle. A nil
// Dedupe disables the cache.
type Dedupe struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDedupe(client *redis.Client, ttl time.Duration) *Dedupe {
	return &Dedupe{client: client, ttl: ttl}
}

// Seen reports whether id was already processed. A failed lookup degrades
// to false: the resolver's idempotence makes replays a NoOp anyway.
func (d *Dedupe) Seen(ctx context.Context, id string) bool {
	if d == nil || id == "" {
		return false
	}
	n, err := d.client.Exists(ctx, seenKeyPrefix+id).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Mark records id as processed. Best effort.
func (d *Dedupe) Mark(ctx context.Context, id string) {
	if d == nil || id == "" {
		return
	}
	_ = d.client.Set(ctx, seenKeyPrefix+id, 1, d.ttl).Err()
}
