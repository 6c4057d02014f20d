package mocks

import (
	"context"

	"github.com/you/kpaforms/domain"
)

// MockIdentityResolver implements domain.IdentityResolver interface for testing
type MockIdentityResolver struct {
	ResolveFunc func(ctx context.Context, bearer string) (*domain.User, error)
}

// NewMockIdentityResolver creates a new MockIdentityResolver with default behaviors
func NewMockIdentityResolver() *MockIdentityResolver {
	return &MockIdentityResolver{}
}

// Resolve turns a bearer token into a user
func (m *MockIdentityResolver) Resolve(ctx context.Context, bearer string) (*domain.User, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, bearer)
	}
	// Default behavior: any non-empty token belongs to user 1
	if bearer == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{ID: 1, PhoneNumber: "9999999999", FullName: "Mock User", IsActive: true}, nil
}

// Compile-time interface compliance verification
var _ domain.IdentityResolver = (*MockIdentityResolver)(nil)
