package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
)

type Repos struct {
	Student  repos.StudentRepo
	Problem  repos.ProblemRepo
	Contest  repos.ContestRepo
	SyncLog  repos.SyncLogRepo
	Settings repos.SettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Student:  repos.NewStudentRepo(db, log),
		Problem:  repos.NewProblemRepo(db, log),
		Contest:  repos.NewContestRepo(db, log),
		SyncLog:  repos.NewSyncLogRepo(db, log),
		Settings: repos.NewSettingsRepo(db, log),
	}
}
