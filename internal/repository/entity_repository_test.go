package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

func TestStudentRepositoryRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Students

	s := &models.Student{StudentNumber: "S-1", FullName: "Ada", Department: "CS", GPA: 3.2, Status: models.StudentStatusActive}
	require.NoError(t, repo.Create(ctx, s))
	require.NotEmpty(t, s.ID)
	assert.EqualValues(t, 1, store.Version())

	dup := &models.Student{StudentNumber: "S-1", FullName: "Other", Department: "CS"}
	assert.True(t, errors.Is(repo.Create(ctx, dup), ErrDuplicateKey))

	list, total, err := repo.List(ctx, models.StudentFilter{Department: "CS"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Ada", list[0].FullName)

	updated, err := repo.Update(ctx, s.ID, func(st *models.Student) error {
		st.GPA = 3.9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3.9, updated.GPA)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.FindByID(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.EqualValues(t, 3, store.Version())
}

func TestTeacherRepositoryBulkOperations(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Teachers

	a := &models.Teacher{EmployeeNumber: "T-1", FullName: "A", Department: "CS", Status: models.TeacherStatusActive}
	b := &models.Teacher{EmployeeNumber: "T-2", FullName: "B", Department: "CS", Status: models.TeacherStatusActive}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	_, err := repo.BulkUpdate(ctx, []string{a.ID, "missing"}, func(tc *models.Teacher) error {
		tc.Status = models.TeacherStatusRetired
		return nil
	})
	assert.True(t, errors.Is(err, ErrNotFound))
	untouched, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TeacherStatusActive, untouched.Status)

	retired, err := repo.BulkUpdate(ctx, []string{a.ID, b.ID}, func(tc *models.Teacher) error {
		tc.Status = models.TeacherStatusRetired
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, retired, 2)

	list, total, err := repo.List(ctx, models.TeacherFilter{Status: models.TeacherStatusRetired})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)

	n, err := repo.BulkDelete(ctx, []string{a.ID, b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, repo.All(ctx))
}

func TestCourseRepositoryKeyedByCode(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	c := &models.Course{Code: "CS101", Name: "Intro", Department: "CS", MaxCapacity: 10}
	require.NoError(t, store.Courses.Create(ctx, c))

	other := &models.Course{Code: "CS102", Name: "Next", Department: "CS", MaxCapacity: 10}
	require.NoError(t, store.Courses.Create(ctx, other))

	_, err := store.Courses.Update(ctx, other.ID, func(co *models.Course) error {
		co.Code = "CS101"
		return nil
	})
	assert.True(t, errors.Is(err, ErrDuplicateKey))
}
