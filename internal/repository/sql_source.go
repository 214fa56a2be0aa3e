package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// SQLSource reads the seed dataset from PostgreSQL for ETL reloads.
type SQLSource struct {
	db *sqlx.DB
}

// NewSQLSource constructs a SQLSource.
func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{db: db}
}

// LoadStudents returns every student row.
func (s *SQLSource) LoadStudents(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, student_number, full_name, email, department, status, gpa, enrollment_year, created_at, updated_at
        FROM students ORDER BY created_at, id`
	var students []models.Student
	if err := s.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	return students, nil
}

// LoadTeachers returns every teacher row.
func (s *SQLSource) LoadTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, employee_number, full_name, email, department, status, overall_rating, created_at, updated_at
        FROM teachers ORDER BY created_at, id`
	var teachers []models.Teacher
	if err := s.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("load teachers: %w", err)
	}
	return teachers, nil
}

type courseRow struct {
	models.Course
	Enrolled pq.StringArray `db:"enrolled_students"`
}

// LoadCourses returns every course row with its enrolled student ids.
func (s *SQLSource) LoadCourses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT c.id, c.code, c.name, c.department, c.teacher_id, c.credits, c.max_capacity, c.created_at, c.updated_at,
        COALESCE(array_agg(e.student_id ORDER BY e.student_id) FILTER (WHERE e.student_id IS NOT NULL), '{}') AS enrolled_students
        FROM courses c LEFT JOIN course_enrollments e ON e.course_id = c.id
        GROUP BY c.id ORDER BY c.created_at, c.id`
	var rows []courseRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		course := row.Course
		course.EnrolledStudents = []string(row.Enrolled)
		if course.EnrolledStudents == nil {
			course.EnrolledStudents = []string{}
		}
		courses = append(courses, course)
	}
	return courses, nil
}
