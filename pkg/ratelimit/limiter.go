// Package ratelimit throttles failed logins with Redis fixed-window counters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrLimited     = errors.New("too many failed login attempts")
	ErrUnavailable = errors.New("rate limiter unavailable")
)

const keyPrefix = "rentit:login:"

// LoginLimiter counts failed logins per identifier. A counter starts its
// window on the first failure and resets when the window expires.
type LoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:       client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Check returns ErrLimited once the identifier has used up its attempts.
func (l *LoginLimiter) Check(ctx context.Context, identifier string) error {
	count, err := l.redis.Get(ctx, loginKey(identifier)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if count >= int64(l.maxAttempts) {
		return ErrLimited
	}
	return nil
}

// Fail records a failed attempt.
func (l *LoginLimiter) Fail(ctx context.Context, identifier string) error {
	key := loginKey(identifier)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) error {
	if err := l.redis.Del(ctx, loginKey(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func loginKey(identifier string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(identifier))
}
