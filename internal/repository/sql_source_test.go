package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

func newSourceMock(t *testing.T) (*SQLSource, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLSource(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestSQLSourceLoadStudents(t *testing.T) {
	source, mock, cleanup := newSourceMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_number", "full_name", "email", "department", "status", "gpa", "enrollment_year", "created_at", "updated_at"}).
		AddRow("s1", "2024-001", "Ada", "ada@example.edu", "CS", "active", 3.6, 2024, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM students ORDER BY created_at, id")).WillReturnRows(rows)

	students, err := source.LoadStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, models.StudentStatusActive, students[0].Status)
	assert.Equal(t, 3.6, students[0].GPA)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSourceLoadTeachersNullRating(t *testing.T) {
	source, mock, cleanup := newSourceMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "employee_number", "full_name", "email", "department", "status", "overall_rating", "created_at", "updated_at"}).
		AddRow("t1", "E-1", "Grace", "grace@example.edu", "CS", "active", nil, now, now).
		AddRow("t2", "E-2", "Alan", "alan@example.edu", "Math", "retired", 4.5, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers ORDER BY created_at, id")).WillReturnRows(rows)

	teachers, err := source.LoadTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Nil(t, teachers[0].OverallRating)
	require.NotNil(t, teachers[1].OverallRating)
	assert.Equal(t, 4.5, *teachers[1].OverallRating)
}

func TestSQLSourceLoadCourses(t *testing.T) {
	source, mock, cleanup := newSourceMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "code", "name", "department", "teacher_id", "credits", "max_capacity", "created_at", "updated_at", "enrolled_students"}).
		AddRow("c1", "CS101", "Intro", "CS", "t1", 3, 30, now, now, "{s1,s2}").
		AddRow("c2", "MA101", "Calculus", "Math", nil, 4, 25, now, now, "{}")
	mock.ExpectQuery("FROM courses c LEFT JOIN course_enrollments").WillReturnRows(rows)

	courses, err := source.LoadCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, []string{"s1", "s2"}, courses[0].EnrolledStudents)
	require.NotNil(t, courses[0].TeacherID)
	assert.Equal(t, "t1", *courses[0].TeacherID)
	assert.Empty(t, courses[1].EnrolledStudents)
	assert.NotNil(t, courses[1].EnrolledStudents)
	assert.Nil(t, courses[1].TeacherID)
}

func TestSQLSourceWrapsErrors(t *testing.T) {
	source, mock, cleanup := newSourceMock(t)
	defer cleanup()

	mock.ExpectQuery("FROM students").WillReturnError(errors.New("connection reset"))

	_, err := source.LoadStudents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load students")
}
