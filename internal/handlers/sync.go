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

type SyncHandler struct {
	log         *logger.Logger
	syncService services.SyncService
}

func NewSyncHandler(log *logger.Logger, syncService services.SyncService) *SyncHandler {
	return &SyncHandler{
		log:         log.With("handler", "SyncHandler"),
		syncService: syncService,
	}
}

type triggerSyncRequest struct {
	StudentID *uuid.UUID `json:"student_id"`
}

// POST /api/sync
// With a student_id in the body, syncs that one student; otherwise runs the
// whole population.
func (h *SyncHandler) Trigger(c *gin.Context) {
	var req triggerSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	if req.StudentID != nil {
		result, err := h.syncService.SyncStudent(c.Request.Context(), *req.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondError(c, http.StatusNotFound, "student_not_found", err)
				return
			}
			h.log.Error("Student sync failed", "error", err, "student_id", *req.StudentID)
			RespondError(c, http.StatusInternalServerError, "sync_failed", err)
			return
		}
		RespondOK(c, result)
		return
	}

	batch := h.syncService.SyncAll(c.Request.Context())
	RespondOK(c, batch)
}

// GET /api/sync-logs?student_id=...&limit=N
func (h *SyncHandler) ListLogs(c *gin.Context) {
	var studentID *uuid.UUID
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
			return
		}
		studentID = &id
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	logs, err := h.syncService.Logs(c.Request.Context(), studentID, limit)
	if err != nil {
		h.log.Error("List sync logs failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_sync_logs_failed", err)
		return
	}
	RespondOK(c, gin.H{"logs": logs})
}
