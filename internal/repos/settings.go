package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

type SettingsRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB) (*types.AppSettings, error)
	Update(ctx context.Context, tx *gorm.DB, settings *types.AppSettings) error
	SetLastSync(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	repoLog := baseLog.With("repo", "SettingsRepo")
	return &settingsRepo{db: db, log: repoLog}
}

// GetOrCreate returns the single settings row, inserting the defaults on
// first use.
func (str *settingsRepo) GetOrCreate(ctx context.Context, tx *gorm.DB) (*types.AppSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = str.db
	}

	var result types.AppSettings
	err := transaction.WithContext(ctx).First(&result).Error
	if err == nil {
		return &result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	result = types.AppSettings{
		SyncTime:                "02:00",
		SyncFrequency:           "daily",
		AutoEmailEnabled:        true,
		InactivityThresholdDays: 7,
	}
	if err := transaction.WithContext(ctx).Create(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (str *settingsRepo) Update(ctx context.Context, tx *gorm.DB, settings *types.AppSettings) error {
	transaction := tx
	if transaction == nil {
		transaction = str.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AppSettings{}).
		Where("id = ?", settings.ID).
		Updates(map[string]interface{}{
			"sync_time":                 settings.SyncTime,
			"sync_frequency":            settings.SyncFrequency,
			"auto_email_enabled":        settings.AutoEmailEnabled,
			"inactivity_threshold_days": settings.InactivityThresholdDays,
		}).Error
}

func (str *settingsRepo) SetLastSync(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = str.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AppSettings{}).
		Where("id = ?", id).
		UpdateColumn("last_sync", at).Error
}
