package models

import "time"

// Course is a curriculum entry with capacity and enrollment.
type Course struct {
	ID               string    `db:"id" json:"id"`
	Code             string    `db:"code" json:"code"`
	Name             string    `db:"name" json:"name"`
	Department       string    `db:"department" json:"department"`
	TeacherID        *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	Credits          int       `db:"credits" json:"credits"`
	EnrolledStudents []string  `db:"-" json:"enrolled_students"`
	MaxCapacity      int       `db:"max_capacity" json:"max_capacity"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Course) GetID() string   { return c.ID }
func (c *Course) SetID(id string) { c.ID = id }

// Clone returns a deep copy so enrollment lists are never shared between snapshots.
func (c *Course) Clone() Course {
	out := *c
	if c.TeacherID != nil {
		id := *c.TeacherID
		out.TeacherID = &id
	}
	if c.EnrolledStudents != nil {
		out.EnrolledStudents = append([]string(nil), c.EnrolledStudents...)
	}
	return out
}

// Stamp sets creation time once and refreshes the update time.
func (c *Course) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// EnrolledCount returns the number of enrolled students.
func (c Course) EnrolledCount() int {
	return len(c.EnrolledStudents)
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	Search     string
	Department string
	TeacherID  string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
