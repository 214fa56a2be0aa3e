package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id string, patch func(*models.Student) error) (*models.Student, error)
	BulkUpdate(ctx context.Context, ids []string, patch func(*models.Student) error) ([]models.Student, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	StudentNumber  string               `json:"student_number" validate:"required,max=32"`
	FullName       string               `json:"full_name" validate:"required,max=200"`
	Email          string               `json:"email" validate:"omitempty,email"`
	Department     string               `json:"department" validate:"required,max=100"`
	Status         models.StudentStatus `json:"status" validate:"omitempty,oneof=active graduated on-leave dropped-out currently-working"`
	GPA            float64              `json:"gpa" validate:"gte=0,lte=4"`
	EnrollmentYear int                  `json:"enrollment_year" validate:"omitempty,gte=1900,lte=2100"`
}

// UpdateStudentRequest is a partial update; nil fields are left unchanged.
type UpdateStudentRequest struct {
	StudentNumber  *string               `json:"student_number" validate:"omitempty,max=32"`
	FullName       *string               `json:"full_name" validate:"omitempty,max=200"`
	Email          *string               `json:"email" validate:"omitempty,email"`
	Department     *string               `json:"department" validate:"omitempty,max=100"`
	Status         *models.StudentStatus `json:"status" validate:"omitempty,oneof=active graduated on-leave dropped-out currently-working"`
	GPA            *float64              `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	EnrollmentYear *int                  `json:"enrollment_year" validate:"omitempty,gte=1900,lte=2100"`
}

// BulkUpdateStudentsRequest applies the same change to several students.
type BulkUpdateStudentsRequest struct {
	IDs        []string              `json:"ids" validate:"required,min=1,dive,required"`
	Status     *models.StudentStatus `json:"status" validate:"omitempty,oneof=active graduated on-leave dropped-out currently-working"`
	Department *string               `json:"department" validate:"omitempty,max=100"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
	}
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page, size := models.NormalizePage(filter.Page, filter.PageSize)
	return students, models.NewPagination(page, size, total), nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return student, nil
}

// Create registers a new student; status defaults to active.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student := &models.Student{
		StudentNumber:  strings.TrimSpace(req.StudentNumber),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Department:     strings.TrimSpace(req.Department),
		Status:         req.Status,
		GPA:            req.GPA,
		EnrollmentYear: req.EnrollmentYear,
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("department", student.Department))
	return student, nil
}

// Update merges the non-nil request fields into the student.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	updated, err := s.repo.Update(ctx, id, func(st *models.Student) error {
		setString(&st.StudentNumber, req.StudentNumber)
		setString(&st.FullName, req.FullName)
		setString(&st.Department, req.Department)
		if req.Email != nil {
			st.Email = strings.TrimSpace(*req.Email)
		}
		if req.Status != nil && *req.Status != "" {
			st.Status = *req.Status
		}
		if req.GPA != nil {
			st.GPA = *req.GPA
		}
		if req.EnrollmentYear != nil {
			st.EnrollmentYear = *req.EnrollmentYear
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return updated, nil
}

// BulkUpdate changes status and/or department of every listed student, or of none.
func (s *StudentService) BulkUpdate(ctx context.Context, req BulkUpdateStudentsRequest) ([]models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk update payload")
	}
	if (req.Status == nil || *req.Status == "") && (req.Department == nil || strings.TrimSpace(*req.Department) == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to update")
	}
	updated, err := s.repo.BulkUpdate(ctx, req.IDs, func(st *models.Student) error {
		if req.Status != nil && *req.Status != "" {
			st.Status = *req.Status
		}
		setString(&st.Department, req.Department)
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("students bulk updated", zap.Int("count", len(updated)))
	return updated, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

// BulkDelete removes every listed student, or none if any is missing.
func (s *StudentService) BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk delete payload")
	}
	n, err := s.repo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return nil, s.translate(err)
	}
	s.logger.Info("students bulk deleted", zap.Int("count", n))
	return &BulkDeleteResult{Deleted: n}, nil
}

func (s *StudentService) translate(err error) error {
	return translateRepoError(err, "student", "student number already used")
}
