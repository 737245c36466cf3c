package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyncType string

const (
	SyncTypeManual    SyncType = "manual"
	SyncTypeScheduled SyncType = "scheduled"
)

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLog is an append-only audit record, one row per sync attempt. The
// engine never updates or deletes rows here.
type SyncLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	Student        *Student   `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	SyncType       SyncType   `gorm:"column:sync_type;not null" json:"sync_type"`
	Status         SyncStatus `gorm:"column:status;not null;index" json:"status"`
	ProblemsSynced int        `gorm:"column:problems_synced;not null;default:0" json:"problems_synced"`
	ContestsSynced int        `gorm:"column:contests_synced;not null;default:0" json:"contests_synced"`
	ErrorMessage   string     `gorm:"column:error_message" json:"error_message,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
}

func (SyncLog) TableName() string { return "sync_log" }

func (l *SyncLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
