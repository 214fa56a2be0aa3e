package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/middleware"
	"github.com/noah-isme/academic-quality-api/internal/models"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Auth      *AuthHandler
	Students  *StudentHandler
	Teachers  *TeacherHandler
	Courses   *CourseHandler
	Analytics *AnalyticsHandler
	ETL       *ETLHandler
	Ops       *MetricsHandler
}

type crudHandler interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	BulkUpdate(*gin.Context)
	Delete(*gin.Context)
	BulkDelete(*gin.Context)
}

// RegisterRoutes mounts ops endpoints at the root and the API under prefix.
// Reads need any authenticated user; writes need ADMIN or SUPERADMIN.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, tokens middleware.TokenValidator) {
	r.GET("/health", h.Ops.Health)
	r.GET("/ready", h.Ops.Ready)
	r.GET("/metrics", h.Ops.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.WithResponseMeta())

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Signed tokens authorize downloads on their own.
	api.GET("/etl/reports/download", h.ETL.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokens))
	secured.POST("/auth/logout", h.Auth.Logout)

	writer := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	mountCRUD(secured.Group("/students"), h.Students, writer)
	mountCRUD(secured.Group("/teachers"), h.Teachers, writer)
	mountCRUD(secured.Group("/courses"), h.Courses, writer)

	analytics := secured.Group("/analytics")
	analytics.GET("/quality", h.Analytics.Quality)
	analytics.GET("/metrics", h.Analytics.Metrics)
	analytics.GET("/departments", h.Analytics.Departments)
	analytics.GET("/risks", h.Analytics.Risks)
	analytics.GET("/trends", h.Analytics.Trends)
	analytics.GET("/distribution", h.Analytics.Distribution)
	analytics.GET("/validation", h.Analytics.Validation)
	analytics.GET("/system", writer, h.Analytics.System)

	etl := secured.Group("/etl", writer)
	etl.POST("/sync", h.ETL.Sync)
	etl.POST("/reports", h.ETL.Report)
	etl.GET("/jobs/:id", h.ETL.Status)
}

func mountCRUD(g *gin.RouterGroup, h crudHandler, writer gin.HandlerFunc) {
	g.GET("", h.List)
	g.POST("", writer, h.Create)
	g.PATCH("/bulk", writer, h.BulkUpdate)
	g.POST("/bulk-delete", writer, h.BulkDelete)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", writer, h.Update)
	g.DELETE("/:id", writer, h.Delete)
}
