package api

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StudentHandler serves the all-students screens.
type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type UpdateStatusRequest struct {
	Status domain.StudentStatus `json:"status" binding:"required"`
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q service.StudentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	page, err := h.studentService.ListStudents(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStatus godoc
// @Summary Set a student's status
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 204 "Status updated"
// @Failure 400 {object} gin.H "Unknown status"
// @Failure 404 {object} gin.H "Student not found"
// @Router /instructor/students/{id}/status [put]
func (h *StudentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.studentService.UpdateStatus(c.Request.Context(), getSession(c), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
