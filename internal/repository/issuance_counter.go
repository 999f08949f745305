package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const issuanceCounterPrefix = "boletos:issuances:"

// IssuanceCounter counts tickets issued per payment session.
type IssuanceCounter interface {
	Increment(ctx context.Context, sessionID string) (int64, error)
}

type redisIssuanceCounter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIssuanceCounter constructs a Redis-backed counter whose keys expire after ttl.
func NewIssuanceCounter(client *redis.Client, ttl time.Duration) IssuanceCounter {
	return &redisIssuanceCounter{client: client, ttl: ttl}
}

func (c *redisIssuanceCounter) Increment(ctx context.Context, sessionID string) (int64, error) {
	key := issuanceCounterPrefix + sessionID
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
