package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, patch func(*models.Course) error) (*models.Course, error)
	BulkUpdate(ctx context.Context, ids []string, patch func(*models.Course) error) ([]models.Course, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

type teacherLookup interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	Code             string   `json:"code" validate:"required,max=32"`
	Name             string   `json:"name" validate:"required,max=200"`
	Department       string   `json:"department" validate:"required,max=100"`
	TeacherID        *string  `json:"teacher_id" validate:"omitempty,min=1"`
	Credits          int      `json:"credits" validate:"gte=0,lte=30"`
	EnrolledStudents []string `json:"enrolled_students" validate:"omitempty,dive,required"`
	MaxCapacity      int      `json:"max_capacity" validate:"required,gt=0"`
}

// UpdateCourseRequest is a partial update. ClearTeacher unassigns the teacher.
type UpdateCourseRequest struct {
	Code             *string   `json:"code" validate:"omitempty,max=32"`
	Name             *string   `json:"name" validate:"omitempty,max=200"`
	Department       *string   `json:"department" validate:"omitempty,max=100"`
	TeacherID        *string   `json:"teacher_id" validate:"omitempty,min=1"`
	ClearTeacher     bool      `json:"clear_teacher"`
	Credits          *int      `json:"credits" validate:"omitempty,gte=0,lte=30"`
	EnrolledStudents *[]string `json:"enrolled_students"`
	MaxCapacity      *int      `json:"max_capacity" validate:"omitempty,gt=0"`
}

// BulkUpdateCoursesRequest applies the same change to several courses.
type BulkUpdateCoursesRequest struct {
	IDs        []string `json:"ids" validate:"required,min=1,dive,required"`
	Department *string  `json:"department" validate:"omitempty,max=100"`
	TeacherID  *string  `json:"teacher_id" validate:"omitempty,min=1"`
}

// CourseService manages curriculum entries.
type CourseService struct {
	repo      courseRepository
	teachers  teacherLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service. teachers may be nil to skip
// teacher reference checks.
func NewCourseService(repo courseRepository, teachers teacherLookup, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// List returns paginated courses.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	return courses, models.NewPagination(page, size, total), nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return course, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	if err := s.ensureTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	course := &models.Course{
		Code:             strings.TrimSpace(req.Code),
		Name:             strings.TrimSpace(req.Name),
		Department:       strings.TrimSpace(req.Department),
		TeacherID:        req.TeacherID,
		Credits:          req.Credits,
		EnrolledStudents: dedupe(req.EnrolledStudents),
		MaxCapacity:      req.MaxCapacity,
	}
	if err := checkCapacity(course); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("code", course.Code))
	return course, nil
}

// Update merges the non-nil request fields into the course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	if req.ClearTeacher && req.TeacherID != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id and clear_teacher are mutually exclusive")
	}
	if err := s.ensureTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, func(c *models.Course) error {
		setString(&c.Code, req.Code)
		setString(&c.Name, req.Name)
		setString(&c.Department, req.Department)
		switch {
		case req.ClearTeacher:
			c.TeacherID = nil
		case req.TeacherID != nil:
			teacherID := *req.TeacherID
			c.TeacherID = &teacherID
		}
		if req.Credits != nil {
			c.Credits = *req.Credits
		}
		if req.EnrolledStudents != nil {
			c.EnrolledStudents = dedupe(*req.EnrolledStudents)
		}
		if req.MaxCapacity != nil {
			c.MaxCapacity = *req.MaxCapacity
		}
		return checkCapacity(c)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return updated, nil
}

// BulkUpdate reassigns department and/or teacher of every listed course, or of none.
func (s *CourseService) BulkUpdate(ctx context.Context, req BulkUpdateCoursesRequest) ([]models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk update payload")
	}
	if req.TeacherID == nil && (req.Department == nil || strings.TrimSpace(*req.Department) == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}
	if err := s.ensureTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	updated, err := s.repo.BulkUpdate(ctx, req.IDs, func(c *models.Course) error {
		setString(&c.Department, req.Department)
		if req.TeacherID != nil {
			teacherID := *req.TeacherID
			c.TeacherID = &teacherID
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("courses bulk updated", zap.Int("count", len(updated)))
	return updated, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

// BulkDelete removes every listed course, or none if any is missing.
func (s *CourseService) BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk delete payload")
	}
	n, err := s.repo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("courses bulk deleted", zap.Int("count", n))
	return &BulkDeleteResult{Deleted: n}, nil
}

func (s *CourseService) ensureTeacher(ctx context.Context, teacherID *string) error {
	if teacherID == nil || s.teachers == nil {
		return nil
	}
	if _, err := s.teachers.FindByID(ctx, *teacherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrValidation, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify teacher")
	}
	return nil
}

// checkCapacity rejects a non-positive capacity. Enrollment may exceed it.
func checkCapacity(c *models.Course) error {
	if c.MaxCapacity <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "max capacity must be positive")
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *CourseService) translate(err error) error {
	return translateRepoError(err, "course", "course code already used")
}
