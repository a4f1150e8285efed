package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when TEST_REDIS_ADDR is set.
func TestRateLimiterRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	rl := NewRateLimiter(client, 2, time.Minute)
	ip, email := "10.0.0.1", "Throttle@Tour.com"
	require.NoError(t, rl.Reset(ctx, ip, email))

	ok, err := rl.Allowed(ctx, ip, email)
	require.NoError(t, err)
	assert.True(t, ok)

	left, err := rl.RecordFailure(ctx, ip, email)
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
	_, err = rl.RecordFailure(ctx, ip, "throttle@tour.com")
	require.NoError(t, err)

	ok, err = rl.Allowed(ctx, ip, email)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, loginKey(ip, email)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, rl.Reset(ctx, ip, email))
	ok, err = rl.Allowed(ctx, ip, email)
	require.NoError(t, err)
	assert.True(t, ok)
}
