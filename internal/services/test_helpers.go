package services

import (
	"testing"
	"time"

	"github.com/you/kpaforms/domain"
	"github.com/you/kpaforms/internal/mocks"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// authServiceDeps bundles the mocks behind an AuthService under test
type authServiceDeps struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	throttle    *mocks.MockLoginThrottle
	audit       *mocks.MockAuditLogger
}

// createAuthServiceForTest creates an AuthService with mock dependencies and a fixed clock
func createAuthServiceForTest(t *testing.T) (*AuthServiceImpl, *authServiceDeps) {
	t.Helper()

	deps := &authServiceDeps{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		throttle:    mocks.NewMockLoginThrottle(),
		audit:       mocks.NewMockAuditLogger(),
	}

	svc := NewAuthService(deps.userRepo, deps.passwordSvc, deps.tokenSvc, deps.throttle, deps.audit).(*AuthServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

// createSubmissionServiceForTest creates a SubmissionService with mock dependencies and a fixed clock
func createSubmissionServiceForTest(t *testing.T) (*SubmissionServiceImpl, *mocks.MockSubmissionRepository, *mocks.MockNotificationService, *mocks.MockAuditLogger) {
	t.Helper()

	repo := mocks.NewMockSubmissionRepository()
	notifier := mocks.NewMockNotificationService()
	audit := mocks.NewMockAuditLogger()

	svc := NewSubmissionService(repo, notifier, audit, DefaultMaxPageSize).(*SubmissionServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, notifier, audit
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		PhoneNumber:  "9999999999",
		FullName:     "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_secret1",
		IsActive:     true,
		CreatedAt:    fixedNow.Add(-24 * time.Hour), // Created yesterday
		UpdatedAt:    fixedNow.Add(-1 * time.Hour),  // Updated 1 hour ago
	}
}

// createInactiveUser creates an inactive user entity for testing
func createInactiveUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.IsActive = false
	return user
}

// createStoredSubmission creates a persisted-looking submission owned by userID
func createStoredSubmission(t *testing.T, id, userID uint) *domain.FormSubmission {
	t.Helper()

	description := "Hallway light is flickering"
	category := domain.CategoryFacilities
	submittedAt := fixedNow.Add(-2 * time.Hour)
	return &domain.FormSubmission{
		ID:          id,
		UserID:      userID,
		FormType:    domain.FormTypeIncidentReport,
		Title:       "Broken light",
		Description: &description,
		Category:    &category,
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusSubmitted,
		FormData:    map[string]interface{}{"room": "B12"},
		Attachments: []string{"/uploads/light.jpg"},
		SubmittedAt: submittedAt,
		UpdatedAt:   submittedAt,
	}
}

func strPtr(s string) *string { return &s }
