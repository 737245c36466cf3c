package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/services"
	"github.com/yungbote/codetrack-backend/internal/types"
)

type StudentHandler struct {
	log             *logger.Logger
	studentService  services.StudentService
	reminderService services.ReminderService
}

func NewStudentHandler(log *logger.Logger, studentService services.StudentService, reminderService services.ReminderService) *StudentHandler {
	return &StudentHandler{
		log:             log.With("handler", "StudentHandler"),
		studentService:  studentService,
		reminderService: reminderService,
	}
}

type studentRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	CodeforcesHandle string `json:"codeforces_handle"`
	EmailEnabled     *bool  `json:"email_enabled"`
}

// GET /api/students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List students failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_students_failed", err)
		return
	}
	RespondOK(c, gin.H{"students": students})
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	student, err := h.studentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		h.log.Error("Get student failed", "error", err, "student_id", id)
		RespondError(c, http.StatusInternalServerError, "get_student_failed", err)
		return
	}
	RespondOK(c, gin.H{"student": student})
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	student := &types.Student{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CodeforcesHandle: req.CodeforcesHandle,
		EmailEnabled:     true,
	}
	if req.EmailEnabled != nil {
		student.EmailEnabled = *req.EmailEnabled
	}

	created, err := h.studentService.Create(c.Request.Context(), student)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_student_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"student": created})
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	student := &types.Student{
		ID:               id,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CodeforcesHandle: req.CodeforcesHandle,
		EmailEnabled:     true,
	}
	if req.EmailEnabled != nil {
		student.EmailEnabled = *req.EmailEnabled
	}

	updated, err := h.studentService.Update(c.Request.Context(), student)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "update_student_failed", err)
		return
	}
	RespondOK(c, gin.H{"student": updated})
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		h.log.Error("Delete student failed", "error", err, "student_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_student_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// POST /api/students/:id/remind
func (h *StudentHandler) Remind(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return
	}
	student, err := h.reminderService.RemindStudent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "student_not_found", err)
			return
		}
		h.log.Error("Reminder send failed", "error", err, "student_id", id)
		RespondError(c, http.StatusBadRequest, "remind_student_failed", err)
		return
	}
	RespondOK(c, gin.H{"student": student})
}
