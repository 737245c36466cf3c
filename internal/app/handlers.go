package app

import (
	"github.com/yungbote/codetrack-backend/internal/handlers"
	"github.com/yungbote/codetrack-backend/internal/logger"
)

type Handlers struct {
	Student  *handlers.StudentHandler
	Progress *handlers.ProgressHandler
	Sync     *handlers.SyncHandler
	Settings *handlers.SettingsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Student:  handlers.NewStudentHandler(log, serviceset.Student, serviceset.Reminder),
		Progress: handlers.NewProgressHandler(log, serviceset.Progress),
		Sync:     handlers.NewSyncHandler(log, serviceset.Sync),
		Settings: handlers.NewSettingsHandler(log, serviceset.Settings, serviceset.Scheduler),
	}
}
