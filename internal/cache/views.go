package cache

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
)

const threadViewHash = "thread:views"

// ViewCounter accumulates thread view counts in redis so every page
// load is a single INCR instead of a database write. A periodic job
// drains the hash into the threads table.
type ViewCounter struct {
	redis *Redis
}

func NewViewCounter(r *Redis) *ViewCounter {
	return &ViewCounter{redis: r}
}

// Incr records one view of a thread.
func (v *ViewCounter) Incr(ctx context.Context, threadID string) error {
	return v.redis.client.HIncrBy(ctx, threadViewHash, threadID, 1).Err()
}

// Drain returns the accumulated per-thread counts and subtracts them
// from the hash. Subtracting instead of deleting keeps any increment
// that lands between the read and the reset; fields at zero stay until
// a new view bumps them. Counts drained before an error are still
// returned so the caller can flush them.
func (v *ViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	vals, err := v.redis.client.HGetAll(ctx, threadViewHash).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(vals))
	for id, raw := range vals {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logrus.Warnf("dropping malformed view count for thread %s: %q", id, raw)
			continue
		}
		if n <= 0 {
			continue
		}

		if err := v.redis.client.HIncrBy(ctx, threadViewHash, id, -n).Err(); err != nil {
			return counts, err
		}
		counts[id] = n
	}

	return counts, nil
}
