package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/services"
)

type SettingsHandler struct {
	log             *logger.Logger
	settingsService services.SettingsService
	scheduler       services.Scheduler
}

func NewSettingsHandler(log *logger.Logger, settingsService services.SettingsService, scheduler services.Scheduler) *SettingsHandler {
	return &SettingsHandler{
		log:             log.With("handler", "SettingsHandler"),
		settingsService: settingsService,
		scheduler:       scheduler,
	}
}

// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.log.Error("Load settings failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_settings_failed", err)
		return
	}
	RespondOK(c, gin.H{"settings": settings})
}

type updateSettingsRequest struct {
	SyncTime                string `json:"sync_time"`
	SyncFrequency           string `json:"sync_frequency"`
	AutoEmailEnabled        *bool  `json:"auto_email_enabled"`
	InactivityThresholdDays *int   `json:"inactivity_threshold_days"`
}

// PUT /api/settings
// A successful update reloads the cron schedule so the new time takes
// effect without a restart.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	current, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.log.Error("Load settings failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_settings_failed", err)
		return
	}

	if req.SyncTime != "" {
		current.SyncTime = req.SyncTime
	}
	if req.SyncFrequency != "" {
		current.SyncFrequency = req.SyncFrequency
	}
	if req.AutoEmailEnabled != nil {
		current.AutoEmailEnabled = *req.AutoEmailEnabled
	}
	if req.InactivityThresholdDays != nil {
		current.InactivityThresholdDays = *req.InactivityThresholdDays
	}

	updated, err := h.settingsService.Update(c.Request.Context(), current)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_settings_failed", err)
		return
	}

	if h.scheduler != nil {
		if err := h.scheduler.Reload(c.Request.Context()); err != nil {
			h.log.Warn("Schedule reload failed after settings update", "error", err)
		}
	}

	RespondOK(c, gin.H{"settings": updated})
}
