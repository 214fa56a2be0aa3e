package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// TeacherRepository manages the in-memory teacher collection.
type TeacherRepository struct {
	items *Collection[models.Teacher, *models.Teacher]
}

// NewTeacherRepository constructs a TeacherRepository bound to the dataset.
func NewTeacherRepository(ds *Dataset) *TeacherRepository {
	return &TeacherRepository{items: NewCollection[models.Teacher](ds, func(t *models.Teacher) string {
		return t.EmployeeNumber
	})}
}

// List returns teachers matching the provided filters and the total match count.
func (r *TeacherRepository) List(_ context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	teachers, total := SelectTeachers(r.items.Snapshot(), filter)
	return teachers, total, nil
}

// All returns the current read-only snapshot.
func (r *TeacherRepository) All(_ context.Context) []models.Teacher {
	return r.items.Snapshot()
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	teacher, err := r.items.Get(id)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher and writes the assigned id and timestamps back.
func (r *TeacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	created, err := r.items.Create(*teacher)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	*teacher = created
	return nil
}

// Update applies patch to the teacher with the given id.
func (r *TeacherRepository) Update(_ context.Context, id string, patch func(*models.Teacher) error) (*models.Teacher, error) {
	updated, err := r.items.Update(id, patch)
	if err != nil {
		return nil, fmt.Errorf("update teacher: %w", err)
	}
	return &updated, nil
}

// BulkUpdate applies patch to every listed teacher or to none.
func (r *TeacherRepository) BulkUpdate(_ context.Context, ids []string, patch func(*models.Teacher) error) ([]models.Teacher, error) {
	updated, err := r.items.BulkUpdate(ids, patch)
	if err != nil {
		return nil, fmt.Errorf("bulk update teachers: %w", err)
	}
	return updated, nil
}

// Delete removes a teacher.
func (r *TeacherRepository) Delete(_ context.Context, id string) error {
	if err := r.items.Delete(id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}

// BulkDelete removes every listed teacher or none.
func (r *TeacherRepository) BulkDelete(_ context.Context, ids []string) (int, error) {
	n, err := r.items.BulkDelete(ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete teachers: %w", err)
	}
	return n, nil
}
