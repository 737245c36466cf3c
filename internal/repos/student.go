package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

type StudentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Student, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Student, error)
	ListInactive(ctx context.Context, tx *gorm.DB) ([]*types.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *types.Student) error
	UpdateSyncFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, currentRating, maxRating int, isActive bool, stats datatypes.JSON, lastUpdated time.Time) error
	IncrementReminderCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	HandleExists(ctx context.Context, tx *gorm.DB, handle string) (bool, error)
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	repoLog := baseLog.With("repo", "StudentRepo")
	return &studentRepo{db: db, log: repoLog}
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

func (sr *studentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Student
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *studentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studentRepo) ListInactive(ctx context.Context, tx *gorm.DB) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", false).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studentRepo) Update(ctx context.Context, tx *gorm.DB, student *types.Student) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]interface{}{
			"name":              student.Name,
			"email":             student.Email,
			"phone":             student.Phone,
			"codeforces_handle": student.CodeforcesHandle,
			"email_enabled":     student.EmailEnabled,
		}).Error
}

// UpdateSyncFields overwrites only the engine-owned columns; identity and
// notification preferences are never touched here.
func (sr *studentRepo) UpdateSyncFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, currentRating, maxRating int, isActive bool, stats datatypes.JSON, lastUpdated time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_rating": currentRating,
			"max_rating":     maxRating,
			"is_active":      isActive,
			"stats":          stats,
			"last_updated":   lastUpdated,
		}).Error
}

func (sr *studentRepo) IncrementReminderCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("id = ?", id).
		UpdateColumn("reminder_emails_sent", gorm.Expr("reminder_emails_sent + ?", 1)).Error
}

func (sr *studentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Student{}).Error
}

func (sr *studentRepo) HandleExists(ctx context.Context, tx *gorm.DB, handle string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Where("codeforces_handle = ?", handle).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
