package mocks

import (
	"context"

	"github.com/you/kpaforms/domain"
)

// MockSubmissionService implements domain.SubmissionService interface for testing
type MockSubmissionService struct {
	CreateFunc func(ctx context.Context, owner *domain.User, draft domain.SubmissionDraft) (*domain.FormSubmission, error)
	ListFunc   func(ctx context.Context, owner *domain.User, query domain.SubmissionQuery) ([]domain.FormSubmission, error)
	GetFunc    func(ctx context.Context, owner *domain.User, id uint) (*domain.FormSubmission, error)
	UpdateFunc func(ctx context.Context, owner *domain.User, id uint, patch domain.SubmissionPatch) (*domain.FormSubmission, error)
}

// NewMockSubmissionService creates a new MockSubmissionService with default behaviors
func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{}
}

// Create files a new submission
func (m *MockSubmissionService) Create(ctx context.Context, owner *domain.User, draft domain.SubmissionDraft) (*domain.FormSubmission, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, owner, draft)
	}
	return &domain.FormSubmission{
		ID:          1,
		UserID:      owner.ID,
		FormType:    domain.FormType(draft.FormType),
		Title:       draft.Title,
		Priority:    domain.DefaultPriority,
		Status:      domain.InitialStatus,
		FormData:    map[string]interface{}{},
		Attachments: []string{},
	}, nil
}

// List returns the owner's submissions
func (m *MockSubmissionService) List(ctx context.Context, owner *domain.User, query domain.SubmissionQuery) ([]domain.FormSubmission, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, owner, query)
	}
	return []domain.FormSubmission{}, nil
}

// Get returns one of the owner's submissions
func (m *MockSubmissionService) Get(ctx context.Context, owner *domain.User, id uint) (*domain.FormSubmission, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, owner, id)
	}
	return nil, domain.ErrSubmissionNotFound
}

// Update applies a partial update
func (m *MockSubmissionService) Update(ctx context.Context, owner *domain.User, id uint, patch domain.SubmissionPatch) (*domain.FormSubmission, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, owner, id, patch)
	}
	return nil, domain.ErrSubmissionNotFound
}

// Compile-time interface compliance verification
var _ domain.SubmissionService = (*MockSubmissionService)(nil)
