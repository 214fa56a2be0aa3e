package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/service"
	"github.com/noah-isme/academic-quality-api/pkg/response"
)

// TeacherHandler exposes teacher endpoints.
type TeacherHandler struct {
	teachers *service.TeacherService
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Search by name, employee number or email"
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param sort query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	page, size := pageQuery(c)
	filter := models.TeacherFilter{
		Search:     searchQuery(c),
		Department: c.Query("department"),
		Status:     models.TeacherStatus(c.Query("status")),
		Page:       page,
		PageSize:   size,
		SortBy:     c.Query("sort"),
		SortOrder:  c.Query("order"),
	}
	teachers, pagination, err := h.teachers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Get godoc
// @Summary Get teacher detail
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.teachers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Create godoc
// @Summary Create teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req service.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teachers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Update godoc
// @Summary Partially update teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/{id} [patch]
func (h *TeacherHandler) Update(c *gin.Context) {
	var req service.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	teacher, err := h.teachers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// BulkUpdate godoc
// @Summary Update status or department of several teachers
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.BulkUpdateTeachersRequest true "Bulk update"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/bulk [patch]
func (h *TeacherHandler) BulkUpdate(c *gin.Context) {
	var req service.BulkUpdateTeachersRequest
	if !bindJSON(c, &req) {
		return
	}
	teachers, err := h.teachers.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// Delete godoc
// @Summary Delete teacher
// @Tags Teachers
// @Param id path string true "Teacher ID"
// @Success 204
// @Security BearerAuth
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teachers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// BulkDelete godoc
// @Summary Delete several teachers
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.BulkDeleteRequest true "Teacher IDs"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers/bulk-delete [post]
func (h *TeacherHandler) BulkDelete(c *gin.Context) {
	var req service.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.teachers.BulkDelete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
