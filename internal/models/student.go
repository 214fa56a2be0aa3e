package models

import "time"

// StudentStatus enumerates the lifecycle states of a student.
type StudentStatus string

const (
	StudentStatusActive           StudentStatus = "active"
	StudentStatusGraduated        StudentStatus = "graduated"
	StudentStatusOnLeave          StudentStatus = "on-leave"
	StudentStatusDroppedOut       StudentStatus = "dropped-out"
	StudentStatusCurrentlyWorking StudentStatus = "currently-working"
)

// StudentStatuses lists every status in display order.
var StudentStatuses = []StudentStatus{
	StudentStatusActive,
	StudentStatusGraduated,
	StudentStatusOnLeave,
	StudentStatusDroppedOut,
	StudentStatusCurrentlyWorking,
}

// Valid reports whether the status is one of the known values.
func (s StudentStatus) Valid() bool {
	for _, known := range StudentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Student represents a learner registered in the institution.
type Student struct {
	ID             string        `db:"id" json:"id"`
	StudentNumber  string        `db:"student_number" json:"student_number"`
	FullName       string        `db:"full_name" json:"full_name"`
	Email          string        `db:"email" json:"email"`
	Department     string        `db:"department" json:"department"`
	Status         StudentStatus `db:"status" json:"status"`
	GPA            float64       `db:"gpa" json:"gpa"`
	EnrollmentYear int           `db:"enrollment_year" json:"enrollment_year"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

func (s *Student) GetID() string   { return s.ID }
func (s *Student) SetID(id string) { s.ID = id }
func (s *Student) Clone() Student  { return *s }

// Stamp sets creation time once and refreshes the update time.
func (s *Student) Stamp(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// StudentFilter is the view state of the student screen.
type StudentFilter struct {
	Search     string
	Department string
	Status     StudentStatus
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
