package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppSettings is a single-row table holding the sync schedule and policy
// knobs. LastSync is written once per batch run by the orchestrator.
type AppSettings struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SyncTime                string     `gorm:"column:sync_time;not null;default:'02:00'" json:"sync_time"`
	SyncFrequency           string     `gorm:"column:sync_frequency;not null;default:'daily'" json:"sync_frequency"`
	AutoEmailEnabled        bool       `gorm:"column:auto_email_enabled;not null;default:true" json:"auto_email_enabled"`
	InactivityThresholdDays int        `gorm:"column:inactivity_threshold_days;not null;default:7" json:"inactivity_threshold_days"`
	LastSync                *time.Time `gorm:"column:last_sync" json:"last_sync,omitempty"`
	CreatedAt               time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"not null" json:"updated_at"`
}

func (AppSettings) TableName() string { return "app_settings" }

func (s *AppSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
