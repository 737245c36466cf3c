package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// SyncLogRepo is append-only; there is intentionally no update or delete.
type SyncLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.SyncLog) error
	List(ctx context.Context, tx *gorm.DB, studentID *uuid.UUID, limit int) ([]*types.SyncLog, error)
}

type syncLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSyncLogRepo(db *gorm.DB, baseLog *logger.Logger) SyncLogRepo {
	repoLog := baseLog.With("repo", "SyncLogRepo")
	return &syncLogRepo{db: db, log: repoLog}
}

func (slr *syncLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.SyncLog) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	return transaction.WithContext(ctx).Create(entry).Error
}

func (slr *syncLogRepo) List(ctx context.Context, tx *gorm.DB, studentID *uuid.UUID, limit int) ([]*types.SyncLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	query := transaction.WithContext(ctx).Order("created_at DESC")
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.SyncLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
