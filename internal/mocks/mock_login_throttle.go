package mocks

import (
	"context"
	"time"

	"github.com/you/kpaforms/domain"
)

// MockLoginThrottle implements domain.LoginThrottle interface for testing
type MockLoginThrottle struct {
	AllowFunc           func(ctx context.Context, phone string) (bool, time.Duration, error)
	RegisterFailureFunc func(ctx context.Context, phone string) error
	ResetFunc           func(ctx context.Context, phone string) error

	Failures map[string]int
	Resets   map[string]int
}

// NewMockLoginThrottle creates a new MockLoginThrottle with default behaviors
func NewMockLoginThrottle() *MockLoginThrottle {
	return &MockLoginThrottle{
		Failures: make(map[string]int),
		Resets:   make(map[string]int),
	}
}

// Allow reports whether a login attempt may proceed
func (m *MockLoginThrottle) Allow(ctx context.Context, phone string) (bool, time.Duration, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, phone)
	}
	// Default behavior: always allowed
	return true, 0, nil
}

// RegisterFailure records a failed attempt
func (m *MockLoginThrottle) RegisterFailure(ctx context.Context, phone string) error {
	m.Failures[phone]++
	if m.RegisterFailureFunc != nil {
		return m.RegisterFailureFunc(ctx, phone)
	}
	return nil
}

// Reset clears failed attempts
func (m *MockLoginThrottle) Reset(ctx context.Context, phone string) error {
	m.Resets[phone]++
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, phone)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.LoginThrottle = (*MockLoginThrottle)(nil)
