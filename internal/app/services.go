package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/services"
)

type Services struct {
	Student   services.StudentService
	Progress  services.ProgressService
	Settings  services.SettingsService
	Reminder  services.ReminderService
	Writer    services.SyncWriter
	Sync      services.SyncService
	Scheduler services.Scheduler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	writer := services.NewSyncWriter(db, log, reposet.Student, reposet.Problem, reposet.Contest, reposet.SyncLog)
	syncService := services.NewSyncService(db, log, clients.Judge, reposet.Student, reposet.Settings, reposet.SyncLog, writer, cfg.SyncPacing)
	reminder := services.NewReminderService(db, log, reposet.Student, clients.Mail)

	return Services{
		Student:   services.NewStudentService(db, log, reposet.Student),
		Progress:  services.NewProgressService(db, log, reposet.Student, reposet.Problem, reposet.Contest),
		Settings:  services.NewSettingsService(db, log, reposet.Settings),
		Reminder:  reminder,
		Writer:    writer,
		Sync:      syncService,
		Scheduler: services.NewScheduler(log, reposet.Settings, syncService, reminder),
	}
}
