package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateTimestamps(ctx context.Context, id uint, lastLoginAt, updatedAt time.Time) error
}

// SubmissionRepository defines form submission data access operations.
// Every lookup is keyed by owner as well as id.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *FormSubmission) error
	FindByIDForOwner(ctx context.Context, id, userID uint) (*FormSubmission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]FormSubmission, error)
	Update(ctx context.Context, submission *FormSubmission) error
}

// AuthService defines registration and login
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*UserProfile, error)
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
}

// IdentityResolver turns a bearer token into the authenticated user
type IdentityResolver interface {
	Resolve(ctx context.Context, bearer string) (*User, error)
}

// SubmissionService defines the owner-scoped submission lifecycle
type SubmissionService interface {
	Create(ctx context.Context, owner *User, draft SubmissionDraft) (*FormSubmission, error)
	List(ctx context.Context, owner *User, query SubmissionQuery) ([]FormSubmission, error)
	Get(ctx context.Context, owner *User, id uint) (*FormSubmission, error)
	Update(ctx context.Context, owner *User, id uint, patch SubmissionPatch) (*FormSubmission, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations
type TokenService interface {
	Issue(userID uint, issuedAt time.Time) (string, error)
	Verify(token string) (uint, error)
	TTL() time.Duration
}

// LoginThrottle limits repeated failed logins per phone number
type LoginThrottle interface {
	Allow(ctx context.Context, phone string) (bool, time.Duration, error)
	RegisterFailure(ctx context.Context, phone string) error
	Reset(ctx context.Context, phone string) error
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}
