// internal/pkg/session/redis_store.go
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed sign-in attempts per ip and email.
type LoginThrottle interface {
	Allowed(ctx context.Context, ip, email string) (bool, error)
	RecordFailure(ctx context.Context, ip, email string) (int64, error)
	Reset(ctx context.Context, ip, email string) error
}

type RateLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewRateLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allowed reports whether another login attempt may be made.
func (r *RateLimiter) Allowed(ctx context.Context, ip, email string) (bool, error) {
	count, err := r.client.Get(ctx, loginKey(ip, email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get login attempts: %w", err)
	}
	return count < r.maxAttempts, nil
}

// RecordFailure increments the failure counter and returns the attempts left.
func (r *RateLimiter) RecordFailure(ctx context.Context, ip, email string) (int64, error) {
	key := loginKey(ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set login attempt window: %w", err)
		}
	}

	remaining := r.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Reset clears the counter after a successful login.
func (r *RateLimiter) Reset(ctx context.Context, ip, email string) error {
	return r.client.Del(ctx, loginKey(ip, email)).Err()
}

func loginKey(ip, email string) string {
	return fmt.Sprintf("ratelimit:login:%s:%s", ip, strings.ToLower(strings.TrimSpace(email)))
}
