package repository

import (
	"cmp"
	"slices"
	"strings"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

type compareFunc[T any] func(a, b *T) int

// selectPage filters, sorts and pages items, returning cloned page records and
// the total number of matches. Equal sort keys fall back to id order.
func selectPage[T any, P Record[T]](items []T, keep func(*T) bool, by compareFunc[T], desc bool, page, size int) ([]T, int) {
	matched := make([]*T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			matched = append(matched, &items[i])
		}
	}
	slices.SortStableFunc(matched, func(a, b *T) int {
		c := by(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(P(a).GetID(), P(b).GetID())
	})

	page, size = models.NormalizePage(page, size)
	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return []T{}, total
	}
	end := min(start+size, total)
	out := make([]T, 0, end-start)
	for _, rec := range matched[start:end] {
		out = append(out, P(rec).Clone())
	}
	return out, total
}

func descending(order string) bool {
	return !strings.EqualFold(order, "asc")
}

func containsFold(needle string, haystack ...string) bool {
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

var studentSorts = map[string]compareFunc[models.Student]{
	"full_name":       func(a, b *models.Student) int { return strings.Compare(a.FullName, b.FullName) },
	"student_number":  func(a, b *models.Student) int { return strings.Compare(a.StudentNumber, b.StudentNumber) },
	"department":      func(a, b *models.Student) int { return strings.Compare(a.Department, b.Department) },
	"gpa":             func(a, b *models.Student) int { return cmp.Compare(a.GPA, b.GPA) },
	"enrollment_year": func(a, b *models.Student) int { return cmp.Compare(a.EnrollmentYear, b.EnrollmentYear) },
	"created_at":      func(a, b *models.Student) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// SelectStudents applies the student view state to items.
func SelectStudents(items []models.Student, filter models.StudentFilter) ([]models.Student, int) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	keep := func(s *models.Student) bool {
		if filter.Department != "" && s.Department != filter.Department {
			return false
		}
		if filter.Status != "" && s.Status != filter.Status {
			return false
		}
		return search == "" || containsFold(search, s.FullName, s.StudentNumber, s.Email)
	}
	by, ok := studentSorts[filter.SortBy]
	if !ok {
		by = studentSorts["created_at"]
	}
	return selectPage[models.Student, *models.Student](items, keep, by, descending(filter.SortOrder), filter.Page, filter.PageSize)
}

var teacherSorts = map[string]compareFunc[models.Teacher]{
	"full_name":       func(a, b *models.Teacher) int { return strings.Compare(a.FullName, b.FullName) },
	"employee_number": func(a, b *models.Teacher) int { return strings.Compare(a.EmployeeNumber, b.EmployeeNumber) },
	"department":      func(a, b *models.Teacher) int { return strings.Compare(a.Department, b.Department) },
	"overall_rating":  func(a, b *models.Teacher) int { return compareRating(a.OverallRating, b.OverallRating) },
	"created_at":      func(a, b *models.Teacher) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// compareRating orders unrated teachers before rated ones.
func compareRating(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

// SelectTeachers applies the teacher view state to items.
func SelectTeachers(items []models.Teacher, filter models.TeacherFilter) ([]models.Teacher, int) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	keep := func(t *models.Teacher) bool {
		if filter.Department != "" && t.Department != filter.Department {
			return false
		}
		if filter.Status != "" && t.Status != filter.Status {
			return false
		}
		return search == "" || containsFold(search, t.FullName, t.EmployeeNumber, t.Email)
	}
	by, ok := teacherSorts[filter.SortBy]
	if !ok {
		by = teacherSorts["created_at"]
	}
	return selectPage[models.Teacher, *models.Teacher](items, keep, by, descending(filter.SortOrder), filter.Page, filter.PageSize)
}

var courseSorts = map[string]compareFunc[models.Course]{
	"code":         func(a, b *models.Course) int { return strings.Compare(a.Code, b.Code) },
	"name":         func(a, b *models.Course) int { return strings.Compare(a.Name, b.Name) },
	"department":   func(a, b *models.Course) int { return strings.Compare(a.Department, b.Department) },
	"credits":      func(a, b *models.Course) int { return cmp.Compare(a.Credits, b.Credits) },
	"enrolled":     func(a, b *models.Course) int { return cmp.Compare(a.EnrolledCount(), b.EnrolledCount()) },
	"max_capacity": func(a, b *models.Course) int { return cmp.Compare(a.MaxCapacity, b.MaxCapacity) },
	"created_at":   func(a, b *models.Course) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// SelectCourses applies the course view state to items.
func SelectCourses(items []models.Course, filter models.CourseFilter) ([]models.Course, int) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	keep := func(c *models.Course) bool {
		if filter.Department != "" && c.Department != filter.Department {
			return false
		}
		if filter.TeacherID != "" && (c.TeacherID == nil || *c.TeacherID != filter.TeacherID) {
			return false
		}
		return search == "" || containsFold(search, c.Code, c.Name)
	}
	by, ok := courseSorts[filter.SortBy]
	if !ok {
		by = courseSorts["created_at"]
	}
	return selectPage[models.Course, *models.Course](items, keep, by, descending(filter.SortOrder), filter.Page, filter.PageSize)
}
