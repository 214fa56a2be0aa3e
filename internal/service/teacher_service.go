package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, id string, patch func(*models.Teacher) error) (*models.Teacher, error)
	BulkUpdate(ctx context.Context, ids []string, patch func(*models.Teacher) error) ([]models.Teacher, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

// CreateTeacherRequest holds payload for creating teachers.
type CreateTeacherRequest struct {
	EmployeeNumber string               `json:"employee_number" validate:"required,max=32"`
	FullName       string               `json:"full_name" validate:"required,max=200"`
	Email          string               `json:"email" validate:"omitempty,email"`
	Department     string               `json:"department" validate:"required,max=100"`
	Status         models.TeacherStatus `json:"status" validate:"omitempty,oneof=active on-leave retired resigned"`
	OverallRating  *float64             `json:"overall_rating" validate:"omitempty,gte=0,lte=5"`
}

// UpdateTeacherRequest is a partial update. ClearRating removes an existing rating.
type UpdateTeacherRequest struct {
	EmployeeNumber *string               `json:"employee_number" validate:"omitempty,max=32"`
	FullName       *string               `json:"full_name" validate:"omitempty,max=200"`
	Email          *string               `json:"email" validate:"omitempty,email"`
	Department     *string               `json:"department" validate:"omitempty,max=100"`
	Status         *models.TeacherStatus `json:"status" validate:"omitempty,oneof=active on-leave retired resigned"`
	OverallRating  *float64              `json:"overall_rating" validate:"omitempty,gte=0,lte=5"`
	ClearRating    bool                  `json:"clear_rating"`
}

// BulkUpdateTeachersRequest applies the same change to several teachers.
type BulkUpdateTeachersRequest struct {
	IDs        []string              `json:"ids" validate:"required,min=1,dive,required"`
	Status     *models.TeacherStatus `json:"status" validate:"omitempty,oneof=active on-leave retired resigned"`
	Department *string               `json:"department" validate:"omitempty,max=100"`
}

// TeacherService orchestrates teacher CRUD operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated teachers.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
	}
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	return teachers, models.NewPagination(page, size, total), nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	teacher := &models.Teacher{
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Department:     strings.TrimSpace(req.Department),
		Status:         req.Status,
		OverallRating:  req.OverallRating,
	}
	if teacher.Status == "" {
		teacher.Status = models.TeacherStatusActive
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("teacher created", zap.String("teacher_id", teacher.ID), zap.String("department", teacher.Department))
	return teacher, nil
}

// Update merges the non-nil request fields into the teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	if req.ClearRating && req.OverallRating != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "overall_rating and clear_rating are mutually exclusive")
	}
	updated, err := s.repo.Update(ctx, id, func(t *models.Teacher) error {
		setString(&t.EmployeeNumber, req.EmployeeNumber)
		setString(&t.FullName, req.FullName)
		setString(&t.Department, req.Department)
		if req.Email != nil {
			t.Email = strings.TrimSpace(*req.Email)
		}
		if req.Status != nil && *req.Status != "" {
			t.Status = *req.Status
		}
		switch {
		case req.ClearRating:
			t.OverallRating = nil
		case req.OverallRating != nil:
			rating := *req.OverallRating
			t.OverallRating = &rating
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return updated, nil
}

// BulkUpdate changes status and/or department of every listed teacher, or of none.
func (s *TeacherService) BulkUpdate(ctx context.Context, req BulkUpdateTeachersRequest) ([]models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk update payload")
	}
	if (req.Status == nil || *req.Status == "") && (req.Department == nil || strings.TrimSpace(*req.Department) == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}
	updated, err := s.repo.BulkUpdate(ctx, req.IDs, func(t *models.Teacher) error {
		if req.Status != nil && *req.Status != "" {
			t.Status = *req.Status
		}
		setString(&t.Department, req.Department)
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("teachers bulk updated", zap.Int("count", len(updated)))
	return updated, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	s.logger.Info("teacher deleted", zap.String("teacher_id", id))
	return nil
}

// BulkDelete removes every listed teacher, or none if any is missing.
func (s *TeacherService) BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk delete payload")
	}
	n, err := s.repo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("teachers bulk deleted", zap.Int("count", n))
	return &BulkDeleteResult{Deleted: n}, nil
}

func (s *TeacherService) translate(err error) error {
	return translateRepoError(err, "teacher", "employee number already used")
}
