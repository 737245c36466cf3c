package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/codetrack-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:    cfg.AllowOrigins,
		StudentHandler:  handlerset.Student,
		ProgressHandler: handlerset.Progress,
		SyncHandler:     handlerset.Sync,
		SettingsHandler: handlerset.Settings,
	})
}
