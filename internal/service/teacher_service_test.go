package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

func newTeacherService(t *testing.T) *TeacherService {
	t.Helper()
	return NewTeacherService(repository.NewStore().Teachers, validator.New(), zap.NewNop())
}

func rating(v float64) *float64 { return &v }

func TestTeacherServiceCreate(t *testing.T) {
	svc := newTeacherService(t)

	teacher, err := svc.Create(context.Background(), CreateTeacherRequest{
		EmployeeNumber: "T-01",
		FullName:       "Ada",
		Department:     "CS",
		OverallRating:  rating(4.5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherStatusActive, teacher.Status)
	require.NotNil(t, teacher.OverallRating)
	assert.Equal(t, 4.5, *teacher.OverallRating)

	_, err = svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-01", FullName: "Bob", Department: "CS"})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-02", FullName: "Bob", Department: "CS", OverallRating: rating(5.5)})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestTeacherServiceUpdateRating(t *testing.T) {
	svc := newTeacherService(t)
	teacher, err := svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-01", FullName: "Ada", Department: "CS", OverallRating: rating(3)})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), teacher.ID, UpdateTeacherRequest{OverallRating: rating(4.2)})
	require.NoError(t, err)
	assert.Equal(t, 4.2, *updated.OverallRating)

	cleared, err := svc.Update(context.Background(), teacher.ID, UpdateTeacherRequest{ClearRating: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.OverallRating)

	_, err = svc.Update(context.Background(), teacher.ID, UpdateTeacherRequest{ClearRating: true, OverallRating: rating(1)})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestTeacherServiceUpdateDuplicateEmployeeNumber(t *testing.T) {
	svc := newTeacherService(t)
	_, err := svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-01", FullName: "Ada", Department: "CS"})
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-02", FullName: "Bob", Department: "CS"})
	require.NoError(t, err)

	number := "T-01"
	_, err = svc.Update(context.Background(), other.ID, UpdateTeacherRequest{EmployeeNumber: &number})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	got, err := svc.Get(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-02", got.EmployeeNumber)
}

func TestTeacherServiceBulkOperations(t *testing.T) {
	svc := newTeacherService(t)
	a, err := svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-01", FullName: "Ada", Department: "CS"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), CreateTeacherRequest{EmployeeNumber: "T-02", FullName: "Bob", Department: "CS"})
	require.NoError(t, err)

	status := models.TeacherStatusRetired
	updated, err := svc.BulkUpdate(context.Background(), BulkUpdateTeachersRequest{IDs: []string{a.ID, b.ID}, Status: &status})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, models.TeacherStatusRetired, updated[0].Status)

	list, page, err := svc.List(context.Background(), models.TeacherFilter{Status: models.TeacherStatusRetired})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, page.TotalCount)

	res, err := svc.BulkDelete(context.Background(), BulkDeleteRequest{IDs: []string{a.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.True(t, errors.Is(svc.Delete(context.Background(), a.ID), appErrors.ErrNotFound))
}
