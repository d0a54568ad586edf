package api

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AssignmentHandler serves exercise assignments and their performed records
// for both instructors and students.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type AccomplishedRequest struct {
	Accomplished *bool `json:"accomplished" binding:"required"`
}

// --- Instructor ---

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	views, err := h.assignmentService.ListAssignments(c.Request.Context(), getSession(c), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// CreateAssignment godoc
// @Summary Assign an exercise to the whole roster
// @Tags Assignments
// @Accept json
// @Produce json
// @Param assignment body domain.ExerciseSpec true "Exercise, repetitions or unlimited, due date"
// @Success 201 {object} domain.ExerciseAssignment
// @Failure 400 {object} gin.H "Validation error"
// @Router /instructor/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req domain.ExerciseSpec
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), getSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var req domain.AssignmentUpdate
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), getSession(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment godoc
// @Summary Delete an assignment nobody has performed
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204 "Deleted"
// @Failure 409 {object} gin.H "Assignment has performed records"
// @Router /instructor/assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), getSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) ListPerformed(c *gin.Context) {
	views, err := h.assignmentService.ListPerformedExercises(c.Request.Context(), getSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AssignmentHandler) SetAccomplished(c *gin.Context) {
	var req AccomplishedRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.assignmentService.SetPerformedAccomplished(c.Request.Context(), getSession(c), c.Param("id"), c.Param("performedId"), *req.Accomplished)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) DeletePerformed(c *gin.Context) {
	if err := h.assignmentService.DeletePerformedExercise(c.Request.Context(), getSession(c), c.Param("id"), c.Param("performedId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Student ---

func (h *AssignmentHandler) ListStudentAssignments(c *gin.Context) {
	views, err := h.assignmentService.ListStudentAssignments(c.Request.Context(), getSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AssignmentHandler) RecordPerformance(c *gin.Context) {
	var req domain.PerformanceInput
	if !bindJSON(c, &req) {
		return
	}
	performed, err := h.assignmentService.RecordPerformance(c.Request.Context(), getSession(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, performed)
}
