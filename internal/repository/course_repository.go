package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// CourseRepository manages the in-memory course collection.
type CourseRepository struct {
	items *Collection[models.Course, *models.Course]
}

// NewCourseRepository constructs a CourseRepository bound to the dataset.
func NewCourseRepository(ds *Dataset) *CourseRepository {
	return &CourseRepository{items: NewCollection[models.Course](ds, func(c *models.Course) string {
		return c.Code
	})}
}

// List returns courses matching the provided filters and the total match count.
func (r *CourseRepository) List(_ context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	courses, total := SelectCourses(r.items.Snapshot(), filter)
	return courses, total, nil
}

// All returns the current read-only snapshot.
func (r *CourseRepository) All(_ context.Context) []models.Course {
	return r.items.Snapshot()
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(_ context.Context, id string) (*models.Course, error) {
	course, err := r.items.Get(id)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course and writes the assigned id and timestamps back.
func (r *CourseRepository) Create(_ context.Context, course *models.Course) error {
	created, err := r.items.Create(*course)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	*course = created
	return nil
}

// Update applies patch to the course with the given id.
func (r *CourseRepository) Update(_ context.Context, id string, patch func(*models.Course) error) (*models.Course, error) {
	updated, err := r.items.Update(id, patch)
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &updated, nil
}

// BulkUpdate applies patch to every listed course or to none.
func (r *CourseRepository) BulkUpdate(_ context.Context, ids []string, patch func(*models.Course) error) ([]models.Course, error) {
	updated, err := r.items.BulkUpdate(ids, patch)
	if err != nil {
		return nil, fmt.Errorf("bulk update courses: %w", err)
	}
	return updated, nil
}

// Delete removes a course.
func (r *CourseRepository) Delete(_ context.Context, id string) error {
	if err := r.items.Delete(id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// BulkDelete removes every listed course or none.
func (r *CourseRepository) BulkDelete(_ context.Context, ids []string) (int, error) {
	n, err := r.items.BulkDelete(ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete courses: %w", err)
	}
	return n, nil
}
