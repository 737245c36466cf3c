package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// StudentService owns the registry side of a student record: identity,
// contact details and notification preference. The engine-owned summary
// fields (ratings, activity, stats, last sync) are written only by the
// reconciliation writer.
type StudentService interface {
	List(ctx context.Context) ([]*types.Student, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Student, error)
	Create(ctx context.Context, student *types.Student) (*types.Student, error)
	Update(ctx context.Context, student *types.Student) (*types.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type studentService struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
}

func NewStudentService(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo) StudentService {
	serviceLog := log.With("service", "StudentService")
	return &studentService{db: db, log: serviceLog, studentRepo: studentRepo}
}

func (ss *studentService) List(ctx context.Context) ([]*types.Student, error) {
	return ss.studentRepo.List(ctx, nil)
}

func (ss *studentService) Get(ctx context.Context, id uuid.UUID) (*types.Student, error) {
	return ss.studentRepo.GetByID(ctx, nil, id)
}

func (ss *studentService) Create(ctx context.Context, student *types.Student) (*types.Student, error) {
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	exists, err := ss.studentRepo.HandleExists(ctx, nil, student.CodeforcesHandle)
	if err != nil {
		return nil, fmt.Errorf("check handle: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("a student with handle %q already exists", student.CodeforcesHandle)
	}

	return ss.studentRepo.Create(ctx, nil, student)
}

func (ss *studentService) Update(ctx context.Context, student *types.Student) (*types.Student, error) {
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	if err := ss.studentRepo.Update(ctx, nil, student); err != nil {
		return nil, err
	}
	return ss.studentRepo.GetByID(ctx, nil, student.ID)
}

func (ss *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	return ss.studentRepo.Delete(ctx, nil, id)
}

func validateStudent(student *types.Student) error {
	if student == nil {
		return fmt.Errorf("no student given")
	}
	student.Name = strings.TrimSpace(student.Name)
	student.Email = strings.TrimSpace(student.Email)
	student.CodeforcesHandle = strings.TrimSpace(student.CodeforcesHandle)
	if student.Name == "" {
		return fmt.Errorf("a name is required")
	}
	if student.Email == "" {
		return fmt.Errorf("an email is required")
	}
	if student.CodeforcesHandle == "" {
		return fmt.Errorf("a codeforces handle is required")
	}
	return nil
}
