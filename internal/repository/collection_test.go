package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

func newStudents() (*Collection[models.Student, *models.Student], *Dataset) {
	ds := NewDataset()
	return NewCollection[models.Student](ds, func(s *models.Student) string { return s.StudentNumber }), ds
}

func TestCollectionCreateAssignsIdentity(t *testing.T) {
	c, ds := newStudents()

	a, err := c.Create(models.Student{FullName: "Ada", StudentNumber: "1"})
	require.NoError(t, err)
	b, err := c.Create(models.Student{FullName: "Alan", StudentNumber: "2"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(2), ds.Version())
}

func TestCollectionCreateRejectsDuplicates(t *testing.T) {
	c, ds := newStudents()
	_, err := c.Create(models.Student{ID: "s1", StudentNumber: "1"})
	require.NoError(t, err)

	_, err = c.Create(models.Student{ID: "s1", StudentNumber: "2"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, err = c.Create(models.Student{StudentNumber: "1"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint64(1), ds.Version())
}

func TestCollectionCopyOnWrite(t *testing.T) {
	c, _ := newStudents()
	created, err := c.Create(models.Student{FullName: "Ada", GPA: 3.0})
	require.NoError(t, err)

	before := c.Snapshot()
	_, err = c.Update(created.ID, func(s *models.Student) error {
		s.GPA = 3.9
		return nil
	})
	require.NoError(t, err)
	after := c.Snapshot()

	assert.Equal(t, 3.0, before[0].GPA)
	assert.Equal(t, 3.9, after[0].GPA)
	assert.NotSame(t, &before[0], &after[0])
}

func TestCollectionUpdateKeepsIDAndMerges(t *testing.T) {
	c, _ := newStudents()
	created, err := c.Create(models.Student{FullName: "Ada", Department: "CS"})
	require.NoError(t, err)

	updated, err := c.Update(created.ID, func(s *models.Student) error {
		s.ID = "hijack"
		s.Department = "Math"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ada", updated.FullName)
	assert.Equal(t, "Math", updated.Department)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = c.Update("missing", func(*models.Student) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionBulkUpdateIsAllOrNothing(t *testing.T) {
	c, ds := newStudents()
	a, _ := c.Create(models.Student{FullName: "A", Status: models.StudentStatusActive})
	b, _ := c.Create(models.Student{FullName: "B", Status: models.StudentStatusActive})
	version := ds.Version()

	_, err := c.BulkUpdate([]string{a.ID, "missing"}, func(s *models.Student) error {
		s.Status = models.StudentStatusGraduated
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("boom")
	_, err = c.BulkUpdate([]string{a.ID, b.ID}, func(s *models.Student) error {
		if s.ID == b.ID {
			return boom
		}
		s.Status = models.StudentStatusGraduated
		return nil
	})
	assert.ErrorIs(t, err, boom)

	for _, s := range c.Snapshot() {
		assert.Equal(t, models.StudentStatusActive, s.Status)
	}
	assert.Equal(t, version, ds.Version())

	updated, err := c.BulkUpdate([]string{a.ID, b.ID, a.ID}, func(s *models.Student) error {
		s.Status = models.StudentStatusGraduated
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Equal(t, version+1, ds.Version())
}

func TestCollectionBulkUpdateRejectsKeyCollision(t *testing.T) {
	c, _ := newStudents()
	a, _ := c.Create(models.Student{StudentNumber: "1"})
	_, _ = c.Create(models.Student{StudentNumber: "2"})

	_, err := c.Update(a.ID, func(s *models.Student) error {
		s.StudentNumber = "2"
		return nil
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCollectionBulkDelete(t *testing.T) {
	c, ds := newStudents()
	a, _ := c.Create(models.Student{FullName: "A"})
	b, _ := c.Create(models.Student{FullName: "B"})
	keep, _ := c.Create(models.Student{FullName: "C"})

	_, err := c.BulkDelete([]string{a.ID, "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, c.Len())

	n, err := c.BulkDelete([]string{a.ID, b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, keep.ID, c.Snapshot()[0].ID)
	assert.Equal(t, uint64(4), ds.Version())

	assert.ErrorIs(t, c.Delete(a.ID), ErrNotFound)
}

func TestCollectionGetReturnsCopy(t *testing.T) {
	ds := NewDataset()
	courses := NewCollection[models.Course](ds, nil)
	created, err := courses.Create(models.Course{Code: "CS101", EnrolledStudents: []string{"s1"}})
	require.NoError(t, err)

	got, err := courses.Get(created.ID)
	require.NoError(t, err)
	got.EnrolledStudents[0] = "changed"

	again, _ := courses.Get(created.ID)
	assert.Equal(t, "s1", again.EnrolledStudents[0])
}

func TestCollectionConcurrentWriters(t *testing.T) {
	c, ds := newStudents()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = c.Create(models.Student{StudentNumber: fmt.Sprintf("n-%d", i)})
			_ = c.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.Equal(t, uint64(50), ds.Version())
}

func TestStoreReplaceAllBumpsOnce(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Students.Create(ctx, &models.Student{FullName: "Old"}))
	version := store.Version()

	next, err := store.ReplaceAll(
		[]models.Student{{ID: "s1", FullName: "New", Department: "CS"}},
		[]models.Teacher{{ID: "t1", Department: "CS"}},
		[]models.Course{{ID: "c1", Department: "CS", MaxCapacity: 10}},
	)
	require.NoError(t, err)

	assert.Equal(t, version+1, next)
	snap := store.Snapshot()
	assert.Equal(t, next, snap.Version)
	require.Len(t, snap.Students, 1)
	assert.Equal(t, "New", snap.Students[0].FullName)
	assert.Len(t, snap.Teachers, 1)
	assert.Len(t, snap.Courses, 1)
	assert.False(t, snap.Courses[0].CreatedAt.IsZero())
}

func TestStoreReplaceAllRejectsDuplicates(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Students.Create(context.Background(), &models.Student{StudentNumber: "S1"}))
	version := store.Version()

	_, err := store.ReplaceAll(
		[]models.Student{{StudentNumber: "S2"}, {StudentNumber: "S2"}},
		nil,
		nil,
	)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = store.ReplaceAll(
		nil,
		[]models.Teacher{{ID: "t1"}, {ID: "t1"}},
		nil,
	)
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, version, store.Version())
	assert.Len(t, store.Snapshot().Students, 1)
}
