package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// StudentProgress is the on-demand detail view: the most recent synced
// snapshot plus statistics recomputed for the caller's trailing window.
type StudentProgress struct {
	Student    *types.Student   `json:"student"`
	Contests   []*types.Contest `json:"contests"`
	Problems   []*types.Problem `json:"problems"`
	Statistics types.Statistics `json:"statistics"`
}

type ProgressService interface {
	Get(ctx context.Context, studentID uuid.UUID, windowDays int) (*StudentProgress, error)
}

type progressService struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
	problemRepo repos.ProblemRepo
	contestRepo repos.ContestRepo
	now         func() time.Time
}

func NewProgressService(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo, problemRepo repos.ProblemRepo, contestRepo repos.ContestRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:          db,
		log:         serviceLog,
		studentRepo: studentRepo,
		problemRepo: problemRepo,
		contestRepo: contestRepo,
		now:         time.Now,
	}
}

func (ps *progressService) Get(ctx context.Context, studentID uuid.UUID, windowDays int) (*StudentProgress, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	student, err := ps.studentRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	contests, err := ps.contestRepo.ListByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	problems, err := ps.problemRepo.ListByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}

	window := time.Duration(windowDays) * 24 * time.Hour
	stats := Summarize(problems, ps.now().UTC(), window)

	return &StudentProgress{
		Student:    student,
		Contests:   contests,
		Problems:   problems,
		Statistics: stats,
	}, nil
}
