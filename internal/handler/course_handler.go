package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/service"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// CourseHandler exposes curriculum endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param search query string false "Search by code or name"
// @Param department query string false "Filter by department"
// @Param teacherId query string false "Filter by teacher"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	page, size := pageQuery(c)
	filter := models.CourseFilter{
		Search:     searchQuery(c),
		Department: c.Query("department"),
		TeacherID:  c.Query("teacherId"),
		Page:       page,
		PageSize:   size,
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	courses, pagination, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Partially update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [patch]
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// BulkUpdate reassigns department or teacher of several courses.
func (h *CourseHandler) BulkUpdate(c *gin.Context) {
	var req service.BulkUpdateCoursesRequest
	if !bindJSON(c, &req) {
		return
	}
	courses, err := h.courses.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Delete removes a course.
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkDelete removes several courses.
func (h *CourseHandler) BulkDelete(c *gin.Context) {
	var req service.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.courses.BulkDelete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
