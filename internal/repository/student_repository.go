package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// StudentRepository manages the in-memory student collection.
type StudentRepository struct {
	items *Collection[models.Student, *models.Student]
}

// NewStudentRepository constructs a StudentRepository bound to the dataset.
func NewStudentRepository(ds *Dataset) *StudentRepository {
	return &StudentRepository{items: NewCollection[models.Student](ds, func(s *models.Student) string {
		return s.StudentNumber
	})}
}

// List returns students matching the provided filters and the total match count.
func (r *StudentRepository) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	students, total := SelectStudents(r.items.Snapshot(), filter)
	return students, total, nil
}

// All returns the current read-only snapshot.
func (r *StudentRepository) All(_ context.Context) []models.Student {
	return r.items.Snapshot()
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(_ context.Context, id string) (*models.Student, error) {
	student, err := r.items.Get(id)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and writes the assigned id and timestamps back.
func (r *StudentRepository) Create(_ context.Context, student *models.Student) error {
	created, err := r.items.Create(*student)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	*student = created
	return nil
}

// Update applies patch to the student with the given id.
func (r *StudentRepository) Update(_ context.Context, id string, patch func(*models.Student) error) (*models.Student, error) {
	updated, err := r.items.Update(id, patch)
	if err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &updated, nil
}

// BulkUpdate applies patch to every listed student or to none.
func (r *StudentRepository) BulkUpdate(_ context.Context, ids []string, patch func(*models.Student) error) ([]models.Student, error) {
	updated, err := r.items.BulkUpdate(ids, patch)
	if err != nil {
		return nil, fmt.Errorf("bulk update students: %w", err)
	}
	return updated, nil
}

// Delete removes a student.
func (r *StudentRepository) Delete(_ context.Context, id string) error {
	if err := r.items.Delete(id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}

// BulkDelete removes every listed student or none.
func (r *StudentRepository) BulkDelete(_ context.Context, ids []string) (int, error) {
	n, err := r.items.BulkDelete(ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete students: %w", err)
	}
	return n, nil
}
