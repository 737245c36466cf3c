package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verdict is the closed set of submission outcomes the engine understands.
// Anything else coming from the judge is normalized to VerdictOther at the
// client boundary.
type Verdict string

const (
	VerdictOK                Verdict = "OK"
	VerdictWrongAnswer       Verdict = "WRONG_ANSWER"
	VerdictTimeLimitExceeded Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictCompilationError  Verdict = "COMPILATION_ERROR"
	VerdictOther             Verdict = "OTHER"
)

// Problem is one unique solved problem per student. The set is recomputed in
// full on every sync; rows never survive a sync that no longer produces them.
type Problem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_problem_student_problem" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	ProblemID string    `gorm:"column:problem_id;not null;uniqueIndex:idx_problem_student_problem" json:"problem_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Rating    *int      `gorm:"column:rating" json:"rating,omitempty"`
	SolvedAt  time.Time `gorm:"column:solved_at;not null;index" json:"solved_at"`
	Verdict   Verdict   `gorm:"column:verdict;not null" json:"verdict"`
	ContestID string    `gorm:"column:contest_id" json:"contest_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Problem) TableName() string { return "problem" }

func (p *Problem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
