package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/you/kpaforms/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	throttle    domain.LoginThrottle
	audit       domain.AuditLogger
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service. A nil throttle disables login
// throttling and a nil audit logger discards audit events.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	throttle domain.LoginThrottle,
	audit domain.AuditLogger,
) domain.AuthService {
	if throttle == nil {
		throttle = NoopLoginThrottle{}
	}
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		throttle:    throttle,
		audit:       audit,
		now:         time.Now,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	if err := validateRegistration(&input); err != nil {
		return nil, err
	}

	// Check if user already exists; the unique index remains the final word
	existingUser, err := s.userRepo.FindByPhone(ctx, input.PhoneNumber)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Hash password
	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		PhoneNumber:  input.PhoneNumber,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithPhone(user.PhoneNumber))

	return user.Profile(), nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	allowed, retryAfter, err := s.throttle.Allow(ctx, phone)
	if err != nil {
		// throttle store unavailable; do not lock everyone out
		log.Printf("LOGIN_THROTTLE_ERROR: phone=%s error=%v", phone, err)
	} else if !allowed {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithPhone(phone).
			WithMetadata("reason", "throttled").
			WithError(domain.ErrTooManyLoginAttempts))
		return nil, &domain.LoginThrottledError{RetryAfter: retryAfter}
	}

	// Find user
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Spend the same bcrypt work as a real comparison
		s.passwordSvc.Verify(s.dummyPasswordHash(), password)
		return nil, s.loginFailed(ctx, phone, 0, "unknown_phone")
	}

	// Verify password
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, s.loginFailed(ctx, phone, user.ID, "bad_password")
	}

	// Check if user is active
	if !user.IsActive {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithPhone(phone).
			WithMetadata("reason", "inactive").
			WithError(domain.ErrUserInactive))
		return nil, domain.ErrUserInactive
	}

	if err := s.throttle.Reset(ctx, phone); err != nil {
		log.Printf("LOGIN_THROTTLE_ERROR: phone=%s error=%v", phone, err)
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateTimestamps(ctx, user.ID, now, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now

	accessToken, err := s.tokenSvc.Issue(user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithPhone(phone))

	return &domain.AuthResult{
		User:        user.Profile(),
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// loginFailed records a failed attempt and returns the generic credential error
func (s *AuthServiceImpl) loginFailed(ctx context.Context, phone string, userID uint, reason string) error {
	if err := s.throttle.RegisterFailure(ctx, phone); err != nil {
		log.Printf("LOGIN_THROTTLE_ERROR: phone=%s error=%v", phone, err)
	}
	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, userID).
		WithPhone(phone).
		WithMetadata("reason", reason).
		WithError(domain.ErrInvalidCredentials))
	return domain.ErrInvalidCredentials
}

// dummyPasswordHash lazily hashes a throwaway password for unknown-phone logins
func (s *AuthServiceImpl) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.passwordSvc.Hash("kpaforms-dummy-password")
		if err != nil {
			log.Printf("DUMMY_HASH_ERROR: %v", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	event.Timestamp = s.now().UTC()
	if err := s.audit.LogEvent(ctx, event); err != nil {
		log.Printf("AUDIT_ERROR: event=%s error=%v", event.EventType, err)
	}
}

type discardAudit struct{}

func (discardAudit) LogEvent(ctx context.Context, event *domain.AuditEvent) error { return nil }
