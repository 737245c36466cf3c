package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contest is one rating-changed contest per student, recomputed in full on
// every sync like Problem.
type Contest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student        *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	ContestID      string    `gorm:"column:contest_id;not null" json:"contest_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Date           time.Time `gorm:"column:date;not null;index" json:"date"`
	Rank           int       `gorm:"column:rank;not null;default:0" json:"rank"`
	RatingChange   int       `gorm:"column:rating_change;not null;default:0" json:"rating_change"`
	NewRating      int       `gorm:"column:new_rating;not null;default:0" json:"new_rating"`
	ProblemsSolved int       `gorm:"column:problems_solved;not null;default:0" json:"problems_solved"`
	TotalProblems  int       `gorm:"column:total_problems;not null;default:0" json:"total_problems"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Contest) TableName() string { return "contest" }

func (c *Contest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
