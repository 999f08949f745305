package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounter(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, IssuanceCounter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewIssuanceCounter(client, ttl)
}

func TestIssuanceCounterIncrementsPerSession(t *testing.T) {
	mr, counter := newCounter(t, time.Hour)
	ctx := context.Background()

	n, err := counter.Increment(ctx, "cs_test_paid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = counter.Increment(ctx, "cs_test_paid")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = counter.Increment(ctx, "cs_test_other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, time.Hour, mr.TTL(issuanceCounterPrefix+"cs_test_paid"))
}

func TestIssuanceCounterExpires(t *testing.T) {
	mr, counter := newCounter(t, time.Minute)
	ctx := context.Background()

	_, err := counter.Increment(ctx, "cs_test_paid")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	n, err := counter.Increment(ctx, "cs_test_paid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestIssuanceCounterWithoutTTL(t *testing.T) {
	mr, counter := newCounter(t, 0)

	_, err := counter.Increment(context.Background(), "cs_test_paid")
	require.NoError(t, err)
	assert.Zero(t, mr.TTL(issuanceCounterPrefix+"cs_test_paid"))
}

func TestIssuanceCounterUnreachable(t *testing.T) {
	mr, counter := newCounter(t, time.Hour)
	mr.Close()

	_, err := counter.Increment(context.Background(), "cs_test_paid")
	assert.Error(t, err)
}
