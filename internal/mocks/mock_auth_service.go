package mocks

import (
	"context"
	"time"

	"github.com/you/kpaforms/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error)
	LoginFunc    func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	// Default behavior: return a mock profile
	user := &domain.User{
		ID:          1,
		PhoneNumber: input.PhoneNumber,
		FullName:    input.FullName,
		Email:       input.Email,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	return user.Profile(), nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, password)
	}
	// Default behavior: return a mock auth result
	user := &domain.User{ID: 1, PhoneNumber: phone, FullName: "Mock User", IsActive: true, CreatedAt: time.Now()}
	return &domain.AuthResult{
		User:        user.Profile(),
		AccessToken: "mock_access_token",
		TokenType:   "bearer",
		ExpiresIn:   1800,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
