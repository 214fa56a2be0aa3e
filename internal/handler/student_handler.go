package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/service"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name, student number or email"
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	page, size := pageQuery(c)
	filter := models.StudentFilter{
		Search:     searchQuery(c),
		Department: c.Query("department"),
		Status:     models.StudentStatus(c.Query("status")),
		Page:       page,
		PageSize:   size,
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Partially update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// BulkUpdate godoc
// @Summary Update status or department of several students
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.BulkUpdateStudentsRequest true "Bulk update"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/bulk [patch]
func (h *StudentHandler) BulkUpdate(c *gin.Context) {
	var req service.BulkUpdateStudentsRequest
	if !bindJSON(c, &req) {
		return
	}
	students, err := h.students.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkDelete godoc
// @Summary Delete several students
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.BulkDeleteRequest true "Student IDs"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students/bulk-delete [post]
func (h *StudentHandler) BulkDelete(c *gin.Context) {
	var req service.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.students.BulkDelete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
