package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Student struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string         `gorm:"column:name;not null" json:"name"`
	Email              string         `gorm:"column:email;not null" json:"email"`
	Phone              string         `gorm:"column:phone" json:"phone"`
	CodeforcesHandle   string         `gorm:"column:codeforces_handle;uniqueIndex;not null" json:"codeforces_handle"`
	CurrentRating      int            `gorm:"column:current_rating;not null;default:0" json:"current_rating"`
	MaxRating          int            `gorm:"column:max_rating;not null;default:0" json:"max_rating"`
	IsActive           bool           `gorm:"column:is_active;not null;default:false" json:"is_active"`
	EmailEnabled       bool           `gorm:"column:email_enabled;not null;default:true" json:"email_enabled"`
	ReminderEmailsSent int            `gorm:"column:reminder_emails_sent;not null;default:0" json:"reminder_emails_sent"`
	Stats              datatypes.JSON `gorm:"column:stats;type:jsonb" json:"stats,omitempty"`
	LastUpdated        *time.Time     `gorm:"column:last_updated" json:"last_updated,omitempty"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string { return "student" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
