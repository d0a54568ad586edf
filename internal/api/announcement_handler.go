package api

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req domain.AnnouncementInput
	if !bindJSON(c, &req) {
		return
	}
	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), getSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	list, err := h.announcementService.ListAnnouncements(c.Request.Context(), getSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), getSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnnouncementHandler) ListStudentAnnouncements(c *gin.Context) {
	list, err := h.announcementService.ListStudentAnnouncements(c.Request.Context(), getSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
