package quality

import (
	"math"
	"strings"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// ValidateInput reports records whose values would make the derived metrics
// meaningless. It never fails; an empty slice means the dataset is clean.
func ValidateInput(students []models.Student, teachers []models.Teacher, courses []models.Course) []models.ValidationIssue {
	issues := make([]models.ValidationIssue, 0)
	add := func(entity, id, field, msg string) {
		issues = append(issues, models.ValidationIssue{Entity: entity, ID: id, Field: field, Message: msg})
	}

	for _, s := range students {
		if math.IsNaN(s.GPA) || s.GPA < 0 || s.GPA > maxGPA {
			add("student", s.ID, "gpa", "gpa must be between 0 and 4")
		}
		if strings.TrimSpace(s.Department) == "" {
			add("student", s.ID, "department", "department is required")
		}
		if !s.Status.Valid() {
			add("student", s.ID, "status", "unknown status "+string(s.Status))
		}
	}
	for _, t := range teachers {
		if r := t.OverallRating; r != nil && (math.IsNaN(*r) || *r < 0 || *r > 5) {
			add("teacher", t.ID, "overall_rating", "overall rating must be between 0 and 5")
		}
		if strings.TrimSpace(t.Department) == "" {
			add("teacher", t.ID, "department", "department is required")
		}
	}
	for _, c := range courses {
		if c.MaxCapacity <= 0 {
			add("course", c.ID, "max_capacity", "max capacity must be positive")
		}
		if strings.TrimSpace(c.Department) == "" {
			add("course", c.ID, "department", "department is required")
		}
	}
	return issues
}
