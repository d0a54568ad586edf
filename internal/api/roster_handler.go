package api

import (
	"bytes"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/export"
	"fitu/dashboard/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RosterHandler serves the class roster and its exports.
type RosterHandler struct {
	rosterService service.RosterService
	exportService service.ExportService
}

func NewRosterHandler(rosterService service.RosterService, exportService service.ExportService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService, exportService: exportService}
}

type RosterRequest struct {
	Students []string `json:"students"`
}

type RosterResponse struct {
	InstructorID string   `json:"instructorId"`
	Students     []string `json:"students"`
}

type PublishRequest struct {
	Format string `json:"format"`
}

func (h *RosterHandler) GetRoster(c *gin.Context) {
	sess := getSession(c)
	set, err := h.rosterService.LoadRoster(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RosterResponse{InstructorID: sess.UID, Students: set.IDs()})
}

// SaveRoster godoc
// @Summary Replace the class roster
// @Tags Roster
// @Accept json
// @Produce json
// @Param roster body RosterRequest true "Every student id on the roster"
// @Success 200 {object} RosterResponse
// @Router /instructor/roster [put]
func (h *RosterHandler) SaveRoster(c *gin.Context) {
	var req RosterRequest
	if !bindJSON(c, &req) {
		return
	}
	sess := getSession(c)
	set, err := h.rosterService.SaveRoster(c.Request.Context(), sess, req.Students)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RosterResponse{InstructorID: sess.UID, Students: set.IDs()})
}

func (h *RosterHandler) ListRosterStudents(c *gin.Context) {
	var q domain.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	page, err := h.rosterService.RosterStudents(c.Request.Context(), getSession(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RosterHandler) ListCandidates(c *gin.Context) {
	var q domain.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	page, err := h.rosterService.RosterCandidates(c.Request.Context(), getSession(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ExportRoster sends the roster as a file download.
func (h *RosterHandler) ExportRoster(c *gin.Context) {
	format := c.DefaultQuery("format", string(export.FormatCSV))
	var buf bytes.Buffer
	if err := h.exportService.ExportRoster(c.Request.Context(), getSession(c), format, &buf); err != nil {
		respondError(c, err)
		return
	}
	f, _ := export.ParseFormat(format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="roster.%s"`, f.Extension()))
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (h *RosterHandler) PublishRoster(c *gin.Context) {
	var req PublishRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	published, err := h.exportService.PublishRoster(c.Request.Context(), getSession(c), req.Format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, published)
}
