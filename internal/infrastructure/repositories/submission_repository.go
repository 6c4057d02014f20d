package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/kpaforms/domain"
)

// SubmissionRepositoryImpl implements domain.SubmissionRepository using GORM
type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

// DBFormSubmission represents the database model for FormSubmission
type DBFormSubmission struct {
	ID          uint                   `gorm:"primaryKey"`
	UserID      uint                   `gorm:"index;not null"`
	FormType    string                 `gorm:"index;size:50;not null"`
	Title       string                 `gorm:"size:200;not null"`
	Description *string                `gorm:"type:text"`
	Category    *string                `gorm:"size:50"`
	Priority    string                 `gorm:"size:20;not null"`
	Status      string                 `gorm:"index;size:20;not null"`
	FormData    jsonObject             `gorm:"type:text"`
	Attachments []string               `gorm:"serializer:json;type:text"`
	SubmittedAt time.Time              `gorm:"not null"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime:false;not null"`
}

// TableName returns the table name for GORM
func (DBFormSubmission) TableName() string {
	return "form_submissions"
}

// mutableColumns are the only columns an update may write.
// user_id, form_type and submitted_at are fixed at creation.
var mutableColumns = []string{
	"title", "description", "category", "priority", "status",
	"form_data", "attachments", "updated_at",
}

// NewSubmissionRepository creates a new form submission repository
func NewSubmissionRepository(db *gorm.DB) domain.SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

// Create implements domain.SubmissionRepository
func (r *SubmissionRepositoryImpl) Create(ctx context.Context, submission *domain.FormSubmission) error {
	dbSub := r.domainToDB(submission)
	if err := r.db.WithContext(ctx).Create(dbSub).Error; err != nil {
		return err
	}
	submission.ID = dbSub.ID
	return nil
}

// FindByIDForOwner implements domain.SubmissionRepository. A submission owned
// by someone else is reported exactly like a missing one.
func (r *SubmissionRepositoryImpl) FindByIDForOwner(ctx context.Context, id, userID uint) (*domain.FormSubmission, error) {
	var dbSub DBFormSubmission
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&dbSub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSub), nil
}

// List implements domain.SubmissionRepository
func (r *SubmissionRepositoryImpl) List(ctx context.Context, filter domain.SubmissionFilter) ([]domain.FormSubmission, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.FormType != nil {
		query = query.Where("form_type = ?", string(*filter.FormType))
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []DBFormSubmission
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	submissions := make([]domain.FormSubmission, 0, len(rows))
	for i := range rows {
		submissions = append(submissions, *r.dbToDomain(&rows[i]))
	}
	return submissions, nil
}

// Update implements domain.SubmissionRepository. Only mutable columns are
// written and the row must still belong to submission.UserID.
func (r *SubmissionRepositoryImpl) Update(ctx context.Context, submission *domain.FormSubmission) error {
	dbSub := r.domainToDB(submission)
	result := r.db.WithContext(ctx).
		Model(dbSub).
		Where("user_id = ?", submission.UserID).
		Select(mutableColumns).
		Updates(dbSub)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// domainToDB converts domain submission to database submission
func (r *SubmissionRepositoryImpl) domainToDB(s *domain.FormSubmission) *DBFormSubmission {
	dbSub := &DBFormSubmission{
		ID:          s.ID,
		UserID:      s.UserID,
		FormType:    string(s.FormType),
		Title:       s.Title,
		Description: s.Description,
		Priority:    string(s.Priority),
		Status:      string(s.Status),
		FormData:    jsonObject(s.FormData),
		Attachments: s.Attachments,
		SubmittedAt: s.SubmittedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Category != nil {
		category := string(*s.Category)
		dbSub.Category = &category
	}
	return dbSub
}

// dbToDomain converts database submission to domain submission
func (r *SubmissionRepositoryImpl) dbToDomain(dbSub *DBFormSubmission) *domain.FormSubmission {
	s := &domain.FormSubmission{
		ID:          dbSub.ID,
		UserID:      dbSub.UserID,
		FormType:    domain.FormType(dbSub.FormType),
		Title:       dbSub.Title,
		Description: dbSub.Description,
		Priority:    domain.Priority(dbSub.Priority),
		Status:      domain.Status(dbSub.Status),
		FormData:    map[string]interface{}(dbSub.FormData),
		Attachments: dbSub.Attachments,
		SubmittedAt: dbSub.SubmittedAt,
		UpdatedAt:   dbSub.UpdatedAt,
	}
	if dbSub.Category != nil {
		category := domain.Category(*dbSub.Category)
		s.Category = &category
	}
	if s.FormData == nil {
		s.FormData = map[string]interface{}{}
	}
	if s.Attachments == nil {
		s.Attachments = []string{}
	}
	return s
}
