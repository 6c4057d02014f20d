package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/kpaforms/domain"
)

// LoginThrottleConfig bounds failed logins per phone number
type LoginThrottleConfig struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

// RedisLoginThrottle implements domain.LoginThrottle with a Redis counter per
// phone number. The counter expires LockoutWindow after the first failure.
type RedisLoginThrottle struct {
	redisClient *redis.Client
	config      LoginThrottleConfig
}

// NewLoginThrottle creates a Redis backed throttle. A nil client or a
// non-positive MaxAttempts disables throttling.
func NewLoginThrottle(redisClient *redis.Client, config LoginThrottleConfig) domain.LoginThrottle {
	if redisClient == nil || config.MaxAttempts <= 0 {
		return NoopLoginThrottle{}
	}
	if config.LockoutWindow <= 0 {
		config.LockoutWindow = 15 * time.Minute
	}
	return &RedisLoginThrottle{
		redisClient: redisClient,
		config:      config,
	}
}

func failureKey(phone string) string {
	return fmt.Sprintf("login:fail:%s", phone)
}

// Allow implements domain.LoginThrottle
func (t *RedisLoginThrottle) Allow(ctx context.Context, phone string) (bool, time.Duration, error) {
	key := failureKey(phone)

	failures, err := t.redisClient.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to read login attempts: %w", err)
	}

	if failures < t.config.MaxAttempts {
		return true, 0, nil
	}

	ttl, err := t.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check lockout TTL: %w", err)
	}
	if ttl <= 0 {
		// counter without expiry; should not happen but never lock forever
		if err := t.redisClient.Expire(ctx, key, t.config.LockoutWindow).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to restore lockout window: %w", err)
		}
		ttl = t.config.LockoutWindow
	}
	return false, ttl, nil
}

// RegisterFailure implements domain.LoginThrottle
func (t *RedisLoginThrottle) RegisterFailure(ctx context.Context, phone string) error {
	key := failureKey(phone)

	// Increment attempts counter atomically
	failures, err := t.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment login attempts: %w", err)
	}
	if failures == 1 {
		if err := t.redisClient.Expire(ctx, key, t.config.LockoutWindow).Err(); err != nil {
			return fmt.Errorf("failed to set lockout window: %w", err)
		}
	}
	return nil
}

// Reset implements domain.LoginThrottle
func (t *RedisLoginThrottle) Reset(ctx context.Context, phone string) error {
	return t.redisClient.Del(ctx, failureKey(phone)).Err()
}

// NoopLoginThrottle never blocks a login
type NoopLoginThrottle struct{}

func (NoopLoginThrottle) Allow(ctx context.Context, phone string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (NoopLoginThrottle) RegisterFailure(ctx context.Context, phone string) error { return nil }

func (NoopLoginThrottle) Reset(ctx context.Context, phone string) error { return nil }
