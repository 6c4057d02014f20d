package config

import (
	"testing"
	"time"

	"github.com/you/kpaforms/internal/config"
)

// TestJWTSecret is the deterministic signing secret used by end-to-end tests
const TestJWTSecret = "test-jwt-secret-for-e2e"

// LoadTestConfig returns a validated configuration backed by an in-memory
// sqlite database. An empty redisAddr disables login throttling.
func LoadTestConfig(t *testing.T, redisAddr string) *config.Config {
	t.Helper()

	cfg := &config.Config{
		App:      config.AppConfig{Port: 8081, GinMode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Redis:    config.RedisConfig{Addr: redisAddr},
		JWT: config.JWTConfig{
			Secret:    TestJWTSecret,
			Issuer:    "kpaforms-test",
			AccessTTL: 15 * time.Minute,
		},
		Login: config.LoginConfig{
			MaxAttempts:   3,
			LockoutWindow: 5 * time.Minute,
		},
		Pagination: config.PaginationConfig{MaxLimit: 100},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}
