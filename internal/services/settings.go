package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

var validSyncFrequencies = map[string]struct{}{
	"hourly": {},
	"daily":  {},
	"weekly": {},
}

type SettingsService interface {
	Get(ctx context.Context) (*types.AppSettings, error)
	Update(ctx context.Context, settings *types.AppSettings) (*types.AppSettings, error)
}

type settingsService struct {
	db           *gorm.DB
	log          *logger.Logger
	settingsRepo repos.SettingsRepo
}

func NewSettingsService(db *gorm.DB, log *logger.Logger, settingsRepo repos.SettingsRepo) SettingsService {
	serviceLog := log.With("service", "SettingsService")
	return &settingsService{db: db, log: serviceLog, settingsRepo: settingsRepo}
}

func (ss *settingsService) Get(ctx context.Context) (*types.AppSettings, error) {
	return ss.settingsRepo.GetOrCreate(ctx, nil)
}

func (ss *settingsService) Update(ctx context.Context, settings *types.AppSettings) (*types.AppSettings, error) {
	if settings == nil {
		return nil, fmt.Errorf("no settings given")
	}
	if _, ok := validSyncFrequencies[settings.SyncFrequency]; !ok {
		return nil, fmt.Errorf("invalid sync frequency %q", settings.SyncFrequency)
	}
	if _, _, err := parseSyncTime(settings.SyncTime); err != nil {
		return nil, err
	}
	if settings.InactivityThresholdDays <= 0 {
		return nil, fmt.Errorf("inactivity threshold must be positive")
	}

	current, err := ss.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		return nil, err
	}
	settings.ID = current.ID

	if err := ss.settingsRepo.Update(ctx, nil, settings); err != nil {
		return nil, err
	}
	return ss.settingsRepo.GetOrCreate(ctx, nil)
}
