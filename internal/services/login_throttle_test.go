package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestRedisLoginThrottle(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	phone := "9999999999"

	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 3, LockoutWindow: 10 * time.Minute})

	for i := 0; i < 3; i++ {
		allowed, _, err := throttle.Allow(ctx, phone)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
		require.NoError(t, throttle.RegisterFailure(ctx, phone))
	}

	allowed, retryAfter, err := throttle.Allow(ctx, phone)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retryAfter)
	assert.Equal(t, 10*time.Minute, mr.TTL(failureKey(phone)))

	// other phone numbers are unaffected
	allowed, _, err = throttle.Allow(ctx, "8888888888")
	require.NoError(t, err)
	assert.True(t, allowed)

	// the lockout lifts once the window passes
	mr.FastForward(10*time.Minute + time.Second)
	allowed, _, err = throttle.Allow(ctx, phone)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLoginThrottle_WindowStartsAtFirstFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	phone := "9999999999"

	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 5, LockoutWindow: time.Minute})

	require.NoError(t, throttle.RegisterFailure(ctx, phone))
	mr.FastForward(30 * time.Second)
	require.NoError(t, throttle.RegisterFailure(ctx, phone))

	assert.Equal(t, 30*time.Second, mr.TTL(failureKey(phone)))
}

func TestRedisLoginThrottle_Reset(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	phone := "9999999999"

	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 1, LockoutWindow: time.Minute})

	require.NoError(t, throttle.RegisterFailure(ctx, phone))
	allowed, _, err := throttle.Allow(ctx, phone)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, throttle.Reset(ctx, phone))
	assert.False(t, mr.Exists(failureKey(phone)))

	allowed, _, err = throttle.Allow(ctx, phone)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLoginThrottle_StoreUnavailable(t *testing.T) {
	mr, client := setupTestRedis(t)
	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 3, LockoutWindow: time.Minute})
	mr.Close()

	_, _, err := throttle.Allow(context.Background(), "9999999999")
	assert.Error(t, err)
}

func TestNewLoginThrottle_Disabled(t *testing.T) {
	_, client := setupTestRedis(t)

	tests := []struct {
		name   string
		client *redis.Client
		config LoginThrottleConfig
	}{
		{name: "no redis", client: nil, config: LoginThrottleConfig{MaxAttempts: 3}},
		{name: "zero attempts", client: client, config: LoginThrottleConfig{MaxAttempts: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			throttle := NewLoginThrottle(tt.client, tt.config)
			_, ok := throttle.(NoopLoginThrottle)
			assert.True(t, ok, "expected NoopLoginThrottle")

			for i := 0; i < 10; i++ {
				require.NoError(t, throttle.RegisterFailure(context.Background(), "9999999999"))
			}
			allowed, _, err := throttle.Allow(context.Background(), "9999999999")
			require.NoError(t, err)
			assert.True(t, allowed)
		})
	}
}

// failingCommandHook makes every call of one Redis command fail
type failingCommandHook struct {
	command string
}

func (h failingCommandHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h failingCommandHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == h.command {
			err := errors.New("command refused")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (h failingCommandHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisLoginThrottle_RestoresMissingExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	phone := "9999999999"

	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 3, LockoutWindow: 10 * time.Minute})

	// counter left without a TTL
	require.NoError(t, mr.Set(failureKey(phone), "3"))
	require.Zero(t, mr.TTL(failureKey(phone)))

	allowed, retryAfter, err := throttle.Allow(ctx, phone)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retryAfter)
	assert.Equal(t, 10*time.Minute, mr.TTL(failureKey(phone)))
}

func TestRedisLoginThrottle_RestoreExpiryFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	phone := "9999999999"

	client.AddHook(failingCommandHook{command: "expire"})
	throttle := NewLoginThrottle(client, LoginThrottleConfig{MaxAttempts: 3, LockoutWindow: 10 * time.Minute})

	require.NoError(t, mr.Set(failureKey(phone), "3"))

	allowed, retryAfter, err := throttle.Allow(ctx, phone)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lockout window")
	assert.False(t, allowed)
	assert.Zero(t, retryAfter)
}
