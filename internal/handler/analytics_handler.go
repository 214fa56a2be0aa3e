package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/middleware"
	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/service"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// AnalyticsHandler serves the quality analytics endpoints.
type AnalyticsHandler struct {
	quality *service.QualityService
	metrics *service.MetricsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(quality *service.QualityService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{quality: quality, metrics: metrics}
}

func respond[T any](c *gin.Context, load func(ctx context.Context) (T, service.ReportMeta, error)) {
	data, meta, err := load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil, middleware.ResponseMeta(c, meta.Map()))
}

// Quality godoc
// @Summary Integrated quality report
// @Description Metrics, department breakdown, risks, trend, distribution and input issues of the current dataset.
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/quality [get]
func (h *AnalyticsHandler) Quality(c *gin.Context) {
	respond(c, h.quality.Report)
}

// Metrics godoc
// @Summary Institution-wide quality metrics
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/metrics [get]
func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	respond(c, h.quality.Metrics)
}

// Departments godoc
// @Summary Per-department quality
// @Tags Analytics
// @Produce json
// @Param department query string false "Limit to one department"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/departments [get]
func (h *AnalyticsHandler) Departments(c *gin.Context) {
	department := c.Query("department")
	respond(c, func(ctx context.Context) ([]models.DepartmentQuality, service.ReportMeta, error) {
		return h.quality.Departments(ctx, department)
	})
}

// Risks godoc
// @Summary Triggered risk rules
// @Tags Analytics
// @Produce json
// @Param level query string false "Low, Medium or High"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/risks [get]
func (h *AnalyticsHandler) Risks(c *gin.Context) {
	level := models.RiskLevel(c.Query("level"))
	switch level {
	case "", models.RiskLow, models.RiskMedium, models.RiskHigh:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "level must be Low, Medium or High"))
		return
	}
	respond(c, func(ctx context.Context) ([]models.RiskAssessment, service.ReportMeta, error) {
		return h.quality.Risks(ctx, level)
	})
}

// Trends returns the monthly performance series.
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	respond(c, h.quality.Trend)
}

// Distribution returns student status, GPA and department counts.
func (h *AnalyticsHandler) Distribution(c *gin.Context) {
	respond(c, h.quality.Distribution)
}

// Validation returns records the engine could not trust.
func (h *AnalyticsHandler) Validation(c *gin.Context) {
	respond(c, h.quality.Validate)
}

// System returns request and cache counters of this process.
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
