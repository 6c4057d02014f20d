package mocks

import (
	"context"

	"github.com/you/kpaforms/domain"
)

// MockSubmissionRepository implements domain.SubmissionRepository interface for testing
type MockSubmissionRepository struct {
	CreateFunc           func(ctx context.Context, submission *domain.FormSubmission) error
	FindByIDForOwnerFunc func(ctx context.Context, id, userID uint) (*domain.FormSubmission, error)
	ListFunc             func(ctx context.Context, filter domain.SubmissionFilter) ([]domain.FormSubmission, error)
	UpdateFunc           func(ctx context.Context, submission *domain.FormSubmission) error
}

// NewMockSubmissionRepository creates a new MockSubmissionRepository with default behaviors
func NewMockSubmissionRepository() *MockSubmissionRepository {
	return &MockSubmissionRepository{}
}

// Create stores a new submission
func (m *MockSubmissionRepository) Create(ctx context.Context, submission *domain.FormSubmission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, submission)
	}
	// Default behavior: success with an assigned ID
	if submission.ID == 0 {
		submission.ID = 1
	}
	return nil
}

// FindByIDForOwner finds a submission by id and owner
func (m *MockSubmissionRepository) FindByIDForOwner(ctx context.Context, id, userID uint) (*domain.FormSubmission, error) {
	if m.FindByIDForOwnerFunc != nil {
		return m.FindByIDForOwnerFunc(ctx, id, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrSubmissionNotFound
}

// List returns an owner's submissions
func (m *MockSubmissionRepository) List(ctx context.Context, filter domain.SubmissionFilter) ([]domain.FormSubmission, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	// Default behavior: empty result
	return []domain.FormSubmission{}, nil
}

// Update writes the mutable fields of a submission
func (m *MockSubmissionRepository) Update(ctx context.Context, submission *domain.FormSubmission) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, submission)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SubmissionRepository = (*MockSubmissionRepository)(nil)
