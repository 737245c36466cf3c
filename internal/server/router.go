package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/codetrack-backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins    []string
	StudentHandler  *handlers.StudentHandler
	ProgressHandler *handlers.ProgressHandler
	SyncHandler     *handlers.SyncHandler
	SettingsHandler *handlers.SettingsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("codetrack-backend"))

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Students
		api.GET("/students", cfg.StudentHandler.List)
		api.POST("/students", cfg.StudentHandler.Create)
		api.GET("/students/:id", cfg.StudentHandler.Get)
		api.PUT("/students/:id", cfg.StudentHandler.Update)
		api.DELETE("/students/:id", cfg.StudentHandler.Delete)
		api.POST("/students/:id/remind", cfg.StudentHandler.Remind)
		api.GET("/students/:id/progress", cfg.ProgressHandler.Get)
		// Sync
		api.POST("/sync", cfg.SyncHandler.Trigger)
		api.GET("/sync-logs", cfg.SyncHandler.ListLogs)
		// Settings
		api.GET("/settings", cfg.SettingsHandler.Get)
		api.PUT("/settings", cfg.SettingsHandler.Update)
	}

	return router
}
