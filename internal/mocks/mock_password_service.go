package mocks

import (
	"strings"

	"github.com/you/kpaforms/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: prefix the password
	return "hashed_" + password, nil
}

// Verify compares a password with its hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: matches the Hash default
	return strings.TrimPrefix(hashedPassword, "hashed_") == password && strings.HasPrefix(hashedPassword, "hashed_")
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
