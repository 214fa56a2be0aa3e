package repository

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// Snapshot is a consistent view of all three collections at one version.
type Snapshot struct {
	Version  uint64
	Students []models.Student
	Teachers []models.Teacher
	Courses  []models.Course
}

// Store groups the entity repositories that share one dataset version.
type Store struct {
	epoch    string
	dataset  *Dataset
	Students *StudentRepository
	Teachers *TeacherRepository
	Courses  *CourseRepository
}

// NewStore constructs an empty store.
func NewStore() *Store {
	ds := NewDataset()
	return &Store{
		epoch:    uuid.NewString(),
		dataset:  ds,
		Students: NewStudentRepository(ds),
		Teachers: NewTeacherRepository(ds),
		Courses:  NewCourseRepository(ds),
	}
}

// Epoch identifies this store instance; versions are only comparable within one epoch.
func (s *Store) Epoch() string {
	return s.epoch
}

// Version returns the current dataset version.
func (s *Store) Version() uint64 {
	return s.dataset.Version()
}

// Snapshot reads the three collections without interleaving with a writer.
// The returned slices are shared and read-only.
func (s *Store) Snapshot() Snapshot {
	s.dataset.mu.RLock()
	defer s.dataset.mu.RUnlock()
	return Snapshot{
		Version:  s.dataset.Version(),
		Students: s.Students.items.Snapshot(),
		Teachers: s.Teachers.items.Snapshot(),
		Courses:  s.Courses.items.Snapshot(),
	}
}

// ReplaceAll swaps all three collections in one step and bumps the version
// once. A batch with duplicate ids or keys leaves the store untouched.
func (s *Store) ReplaceAll(students []models.Student, teachers []models.Teacher, courses []models.Course) (uint64, error) {
	nextStudents := s.Students.items.prepare(students)
	nextTeachers := s.Teachers.items.prepare(teachers)
	nextCourses := s.Courses.items.prepare(courses)
	if err := s.Students.items.checkBatch(nextStudents); err != nil {
		return 0, fmt.Errorf("replace students: %w", err)
	}
	if err := s.Teachers.items.checkBatch(nextTeachers); err != nil {
		return 0, fmt.Errorf("replace teachers: %w", err)
	}
	if err := s.Courses.items.checkBatch(nextCourses); err != nil {
		return 0, fmt.Errorf("replace courses: %w", err)
	}

	s.dataset.mu.Lock()
	defer s.dataset.mu.Unlock()
	s.Students.items.publish(nextStudents)
	s.Teachers.items.publish(nextTeachers)
	s.Courses.items.publish(nextCourses)
	return s.dataset.version.Add(1), nil
}
