package mocks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/you/kpaforms/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc  func(userID uint, issuedAt time.Time) (string, error)
	VerifyFunc func(token string) (uint, error)
	TTLValue   time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TTLValue: 30 * time.Minute}
}

// Issue issues an access token for the user
func (m *MockTokenService) Issue(userID uint, issuedAt time.Time) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, issuedAt)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_user_%d", userID), nil
}

// Verify validates a token and returns the user ID
func (m *MockTokenService) Verify(token string) (uint, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: accept tokens produced by the Issue default
	id, err := strconv.ParseUint(strings.TrimPrefix(token, "access_token_user_"), 10, 64)
	if err != nil || !strings.HasPrefix(token, "access_token_user_") {
		return 0, domain.ErrTokenInvalid
	}
	return uint(id), nil
}

// TTL returns the configured token lifetime
func (m *MockTokenService) TTL() time.Duration {
	return m.TTLValue
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
