package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

type ContestRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, contests []*types.Contest) error
	ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Contest, error)
	DeleteByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) error
}

type contestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContestRepo(db *gorm.DB, baseLog *logger.Logger) ContestRepo {
	repoLog := baseLog.With("repo", "ContestRepo")
	return &contestRepo{db: db, log: repoLog}
}

func (cr *contestRepo) CreateBatch(ctx context.Context, tx *gorm.DB, contests []*types.Contest) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contests) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Create(&contests).Error
}

func (cr *contestRepo) ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Contest, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contest
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contestRepo) DeleteByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&types.Contest{}).Error
}
