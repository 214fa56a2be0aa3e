package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/service"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// ETLHandler exposes reload and export jobs.
type ETLHandler struct {
	etl *service.ETLService
}

// NewETLHandler constructs ETLHandler.
func NewETLHandler(etl *service.ETLService) *ETLHandler {
	return &ETLHandler{etl: etl}
}

// ReportRequest selects the export format.
type ReportRequest struct {
	Format models.ReportFormat `json:"format"`
}

// Sync godoc
// @Summary Reload students, teachers and courses from the source database
// @Tags ETL
// @Produce json
// @Success 202 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Security BearerAuth
// @Router /etl/sync [post]
func (h *ETLHandler) Sync(c *gin.Context) {
	job, err := h.etl.TriggerSync(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Report godoc
// @Summary Export the quality report
// @Tags ETL
// @Accept json
// @Produce json
// @Param payload body ReportRequest true "Export format (csv or pdf)"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /etl/reports [post]
func (h *ETLHandler) Report(c *gin.Context) {
	var req ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.etl.TriggerReport(c.Request.Context(), currentUserID(c), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, job)
}

// Status godoc
// @Summary Job status
// @Tags ETL
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /etl/jobs/{id} [get]
func (h *ETLHandler) Status(c *gin.Context) {
	job, err := h.etl.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download an exported report
// @Tags ETL
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /etl/reports/download [get]
func (h *ETLHandler) Download(c *gin.Context) {
	dl, err := h.etl.ResolveDownload(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.File.Close()

	info, err := dl.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), dl.ContentType, dl.File, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", dl.Name),
		"Cache-Control":       "no-store",
	})
}
