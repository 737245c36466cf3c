package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

// GET /api/students/:id/progress?days=N
func (h *ProgressHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_days", errors.New("days must be a non-negative integer"))
			return
		}
	}

	progress, err := h.progressService.Get(c.Request.Context(), id, days)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		h.log.Error("Load progress failed", "error", err, "student_id", id)
		RespondError(c, http.StatusInternalServerError, "load_progress_failed", err)
		return
	}
	RespondOK(c, progress)
}
