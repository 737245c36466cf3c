package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/clients/sendgrid"
	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// ReminderService nudges inactive students over email. The mail client may
// be nil (no SENDGRID_API_KEY configured), in which case sends fail with a
// clear error instead of at startup.
type ReminderService interface {
	RemindStudent(ctx context.Context, studentID uuid.UUID) (*types.Student, error)
	RemindInactive(ctx context.Context) (int, error)
}

type reminderService struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
	mail        sendgrid.Client
}

func NewReminderService(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo, mail sendgrid.Client) ReminderService {
	serviceLog := log.With("service", "ReminderService")
	return &reminderService{db: db, log: serviceLog, studentRepo: studentRepo, mail: mail}
}

func (rs *reminderService) RemindStudent(ctx context.Context, studentID uuid.UUID) (*types.Student, error) {
	student, err := rs.studentRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	if !student.EmailEnabled {
		return nil, fmt.Errorf("email notifications are disabled for %s", student.Name)
	}

	if err := rs.send(ctx, student); err != nil {
		return nil, err
	}
	if err := rs.studentRepo.IncrementReminderCount(ctx, nil, student.ID); err != nil {
		return nil, fmt.Errorf("increment reminder count: %w", err)
	}
	return rs.studentRepo.GetByID(ctx, nil, student.ID)
}

// RemindInactive mails every inactive student whose notifications are
// enabled and returns how many reminders went out. Individual send failures
// are logged and skipped so one bad address cannot stop the rest.
func (rs *reminderService) RemindInactive(ctx context.Context) (int, error) {
	students, err := rs.studentRepo.ListInactive(ctx, nil)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, student := range students {
		if !student.EmailEnabled {
			continue
		}
		if err := rs.send(ctx, student); err != nil {
			rs.log.Warn("Reminder send failed", "student_id", student.ID.String(), "error", err)
			continue
		}
		if err := rs.studentRepo.IncrementReminderCount(ctx, nil, student.ID); err != nil {
			rs.log.Warn("Failed to increment reminder count", "student_id", student.ID.String(), "error", err)
		}
		sent++
	}
	return sent, nil
}

func (rs *reminderService) send(ctx context.Context, student *types.Student) error {
	if rs.mail == nil {
		return fmt.Errorf("mail client not configured")
	}

	_, err := rs.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: student.Email, Name: student.Name}},
		Subject: "Time to get back to problem solving!",
		Text: fmt.Sprintf(
			"Hi %s,\n\nWe noticed you haven't solved any problems on Codeforces recently. "+
				"Keep your streak going — even one problem a day makes a difference.\n\n"+
				"Your handle: %s\nCurrent rating: %d\n\nHappy solving!",
			student.Name, student.CodeforcesHandle, student.CurrentRating,
		),
	})
	return err
}
