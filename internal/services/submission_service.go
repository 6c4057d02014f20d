package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/kpaforms/domain"
)

// Page size bounds for listing submissions
const (
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

// SubmissionServiceImpl implements domain.SubmissionService. Every operation is
// scoped to the owner passed in; no path reads or writes another user's rows.
type SubmissionServiceImpl struct {
	repo        domain.SubmissionRepository
	notifier    domain.NotificationService
	audit       domain.AuditLogger
	maxPageSize int
	now         func() time.Time
}

// NewSubmissionService creates a new submission service. A nil notifier
// disables status change SMS.
func NewSubmissionService(
	repo domain.SubmissionRepository,
	notifier domain.NotificationService,
	audit domain.AuditLogger,
	maxPageSize int,
) domain.SubmissionService {
	if audit == nil {
		audit = discardAudit{}
	}
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &SubmissionServiceImpl{
		repo:        repo,
		notifier:    notifier,
		audit:       audit,
		maxPageSize: maxPageSize,
		now:         time.Now,
	}
}

// Create implements domain.SubmissionService
func (s *SubmissionServiceImpl) Create(ctx context.Context, owner *domain.User, draft domain.SubmissionDraft) (*domain.FormSubmission, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	// validated above; parse cannot fail
	formType, _ := domain.ParseFormType(draft.FormType)
	priority := domain.DefaultPriority
	if draft.Priority != nil {
		priority, _ = domain.ParsePriority(*draft.Priority)
	}

	now := s.now().UTC()
	submission := &domain.FormSubmission{
		UserID:      owner.ID,
		FormType:    formType,
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    priority,
		Status:      domain.InitialStatus,
		FormData:    draft.FormData,
		Attachments: draft.Attachments,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if draft.Category != nil {
		category, _ := domain.ParseCategory(*draft.Category)
		submission.Category = &category
	}
	if submission.FormData == nil {
		submission.FormData = map[string]interface{}{}
	}
	if submission.Attachments == nil {
		submission.Attachments = []string{}
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.SubmissionCreatedEvent, owner.ID).
		WithMetadata("submission_id", submission.ID).
		WithMetadata("form_type", string(submission.FormType)))

	return submission, nil
}

// List implements domain.SubmissionService. Paging values are clamped rather
// than rejected: a negative skip starts at the first row, a zero or negative
// limit means the default page size, and limits above the maximum are capped.
// A filter value outside its enumeration matches no rows.
func (s *SubmissionServiceImpl) List(ctx context.Context, owner *domain.User, query domain.SubmissionQuery) ([]domain.FormSubmission, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	filter := domain.SubmissionFilter{
		UserID: owner.ID,
		Offset: max(query.Skip, 0),
		Limit:  query.Limit,
	}
	switch {
	case query.Limit <= 0:
		filter.Limit = DefaultPageSize
	case query.Limit > s.maxPageSize:
		filter.Limit = s.maxPageSize
	}

	if query.Status != "" {
		status, err := domain.ParseStatus(query.Status)
		if err != nil {
			return []domain.FormSubmission{}, nil
		}
		filter.Status = &status
	}
	if query.FormType != "" {
		formType, err := domain.ParseFormType(query.FormType)
		if err != nil {
			return []domain.FormSubmission{}, nil
		}
		filter.FormType = &formType
	}

	submissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// Get implements domain.SubmissionService
func (s *SubmissionServiceImpl) Get(ctx context.Context, owner *domain.User, id uint) (*domain.FormSubmission, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByIDForOwner(ctx, id, owner.ID)
}

// Update implements domain.SubmissionService. Only fields present in the
// patch change; updated_at always moves forward.
func (s *SubmissionServiceImpl) Update(ctx context.Context, owner *domain.User, id uint, patch domain.SubmissionPatch) (*domain.FormSubmission, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	submission, err := s.repo.FindByIDForOwner(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}

	previousStatus := submission.Status
	changed := applyPatch(submission, patch)

	now := s.now().UTC()
	if !now.After(submission.UpdatedAt) {
		now = submission.UpdatedAt.Add(time.Microsecond)
	}
	submission.UpdatedAt = now

	if err := s.repo.Update(ctx, submission); err != nil {
		return nil, err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.SubmissionUpdatedEvent, owner.ID).
		WithMetadata("submission_id", submission.ID).
		WithMetadata("fields", changed))

	if submission.Status != previousStatus {
		s.notifyStatusChange(ctx, owner, submission)
	}

	return submission, nil
}

// applyPatch copies the present fields of patch onto submission and returns
// their names
func applyPatch(submission *domain.FormSubmission, patch domain.SubmissionPatch) []string {
	changed := []string{}
	if patch.Title != nil {
		submission.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Description != nil {
		description := *patch.Description
		submission.Description = &description
		changed = append(changed, "description")
	}
	if patch.Category != nil {
		category, _ := domain.ParseCategory(*patch.Category)
		submission.Category = &category
		changed = append(changed, "category")
	}
	if patch.Priority != nil {
		submission.Priority, _ = domain.ParsePriority(*patch.Priority)
		changed = append(changed, "priority")
	}
	if patch.Status != nil {
		submission.Status, _ = domain.ParseStatus(*patch.Status)
		changed = append(changed, "status")
	}
	if patch.FormData != nil {
		submission.FormData = patch.FormData
		changed = append(changed, "form_data")
	}
	if patch.Attachments != nil {
		submission.Attachments = patch.Attachments
		changed = append(changed, "attachments")
	}
	return changed
}

// notifyStatusChange texts the owner. Delivery failures never fail the update.
func (s *SubmissionServiceImpl) notifyStatusChange(ctx context.Context, owner *domain.User, submission *domain.FormSubmission) {
	if s.notifier == nil {
		return
	}
	message := fmt.Sprintf("Your submission #%d %q is now %s.", submission.ID, submission.Title, submission.Status)
	if err := s.notifier.SendSMS(owner.PhoneNumber, message); err != nil {
		log.Printf("STATUS_SMS_FAILED: submission_id=%d user_id=%d error=%v", submission.ID, owner.ID, err)
		s.logEvent(ctx, domain.NewAuditEvent(domain.SubmissionNotifyFailureEvent, owner.ID).
			WithPhone(owner.PhoneNumber).
			WithMetadata("submission_id", submission.ID).
			WithError(err))
	}
}

func (s *SubmissionServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	event.Timestamp = s.now().UTC()
	if err := s.audit.LogEvent(ctx, event); err != nil {
		log.Printf("AUDIT_ERROR: event=%s error=%v", event.EventType, err)
	}
}
