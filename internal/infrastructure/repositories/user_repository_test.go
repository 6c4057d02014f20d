package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/kpaforms/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// every pooled connection to :memory: would get its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Auto-migrate the schema
	if err := db.AutoMigrate(&DBUser{}, &DBFormSubmission{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func newTestUser(phone, email string) *domain.User {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.User{
		PhoneNumber:  phone,
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "hashed_password",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		existing      []*domain.User
		user          *domain.User
		expectedError error
	}{
		{
			name: "successful creation",
			user: newTestUser("9999999999", "test@example.com"),
		},
		{
			name:          "duplicate phone number",
			existing:      []*domain.User{newTestUser("9999999999", "first@example.com")},
			user:          newTestUser("9999999999", "second@example.com"),
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:          "duplicate email",
			existing:      []*domain.User{newTestUser("9999999999", "same@example.com")},
			user:          newTestUser("8888888888", "same@example.com"),
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:     "several users without email",
			existing: []*domain.User{newTestUser("9999999999", "")},
			user:     newTestUser("8888888888", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewUserRepository(db)
			ctx := context.Background()

			for _, u := range tt.existing {
				if err := repo.Create(ctx, u); err != nil {
					t.Fatalf("failed to seed user: %v", err)
				}
			}

			err := repo.Create(ctx, tt.user)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				var count int64
				db.Model(&DBUser{}).Count(&count)
				if count != int64(len(tt.existing)) {
					t.Errorf("expected %d users after failed insert, got %d", len(tt.existing), count)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.user.ID == 0 {
				t.Error("expected ID to be assigned")
			}
		})
	}
}

func TestUserRepositoryImpl_FindByPhone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := newTestUser("9999999999", "test@example.com")
	if err := repo.Create(ctx, seeded); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	noEmail := newTestUser("7777777777", "")
	if err := repo.Create(ctx, noEmail); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	tests := []struct {
		name          string
		phone         string
		expectedEmail string
		expectedError error
	}{
		{name: "successful find by phone", phone: "9999999999", expectedEmail: "test@example.com"},
		{name: "user without email", phone: "7777777777", expectedEmail: ""},
		{name: "phone not found", phone: "1234567890", expectedError: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindByPhone(ctx, tt.phone)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				if user != nil {
					t.Error("expected nil user")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.PhoneNumber != tt.phone {
				t.Errorf("expected phone %s, got %s", tt.phone, user.PhoneNumber)
			}
			if user.Email != tt.expectedEmail {
				t.Errorf("expected email %q, got %q", tt.expectedEmail, user.Email)
			}
			if user.FullName != "Test User" || !user.IsActive {
				t.Errorf("unexpected user fields: %+v", user)
			}
			if user.PasswordHash != "hashed_password" {
				t.Errorf("expected stored hash, got %q", user.PasswordHash)
			}
		})
	}
}

func TestUserRepositoryImpl_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := newTestUser("9999999999", "")
	if err := repo.Create(ctx, seeded); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	user, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != seeded.ID || user.PhoneNumber != seeded.PhoneNumber {
		t.Errorf("unexpected user %+v", user)
	}
	if !user.CreatedAt.Equal(seeded.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", seeded.CreatedAt, user.CreatedAt)
	}

	if _, err := repo.FindByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_InactiveUserRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	inactive := newTestUser("9999999999", "")
	inactive.IsActive = false
	if err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	user, err := repo.FindByPhone(ctx, "9999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.IsActive {
		t.Error("expected inactive user to stay inactive")
	}
}

func TestUserRepositoryImpl_UpdateTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seeded := newTestUser("9999999999", "")
	if err := repo.Create(ctx, seeded); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	loginAt := seeded.CreatedAt.Add(2 * time.Hour)
	if err := repo.UpdateTimestamps(ctx, seeded.ID, loginAt, loginAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.FindByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.LastLoginAt == nil || !user.LastLoginAt.Equal(loginAt) {
		t.Errorf("expected last_login_at %v, got %v", loginAt, user.LastLoginAt)
	}
	if !user.UpdatedAt.Equal(loginAt) {
		t.Errorf("expected updated_at %v, got %v", loginAt, user.UpdatedAt)
	}
	if !user.CreatedAt.Equal(seeded.CreatedAt) {
		t.Error("created_at must not change")
	}

	if err := repo.UpdateTimestamps(ctx, 999, loginAt, loginAt); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
