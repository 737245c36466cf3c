package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

type ProblemRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, problems []*types.Problem) error
	ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Problem, error)
	DeleteByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) error
}

type problemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProblemRepo(db *gorm.DB, baseLog *logger.Logger) ProblemRepo {
	repoLog := baseLog.With("repo", "ProblemRepo")
	return &problemRepo{db: db, log: repoLog}
}

func (pr *problemRepo) CreateBatch(ctx context.Context, tx *gorm.DB, problems []*types.Problem) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(problems) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Create(&problems).Error
}

func (pr *problemRepo) ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Problem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Problem
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("solved_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *problemRepo) DeleteByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&types.Problem{}).Error
}
