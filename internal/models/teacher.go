package models

import "time"

// TeacherStatus enumerates employment states of a teacher.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusOnLeave  TeacherStatus = "on-leave"
	TeacherStatusRetired  TeacherStatus = "retired"
	TeacherStatusResigned TeacherStatus = "resigned"
)

// Valid reports whether the status is one of the known values.
func (s TeacherStatus) Valid() bool {
	switch s {
	case TeacherStatusActive, TeacherStatusOnLeave, TeacherStatusRetired, TeacherStatusResigned:
		return true
	}
	return false
}

// Teacher represents an instructor record.
type Teacher struct {
	ID             string        `db:"id" json:"id"`
	EmployeeNumber string        `db:"employee_number" json:"employee_number"`
	FullName       string        `db:"full_name" json:"full_name"`
	Email          string        `db:"email" json:"email"`
	Department     string        `db:"department" json:"department"`
	Status         TeacherStatus `db:"status" json:"status"`
	OverallRating  *float64      `db:"overall_rating" json:"overall_rating,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

func (t *Teacher) GetID() string   { return t.ID }
func (t *Teacher) SetID(id string) { t.ID = id }

// Clone returns a copy that does not share the rating pointer.
func (t *Teacher) Clone() Teacher {
	out := *t
	if t.OverallRating != nil {
		rating := *t.OverallRating
		out.OverallRating = &rating
	}
	return out
}

// Stamp sets creation time once and refreshes the update time.
func (t *Teacher) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search     string
	Department string
	Status     TeacherStatus
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
