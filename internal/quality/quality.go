// Package quality derives education quality analytics from student, teacher and
// course collections. Every function is pure: inputs are never mutated and the
// same inputs always produce the same outputs.
package quality

import (
	"math"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

const (
	maxGPA = 4.0

	// teaching = (ratioCeiling - ratio) * ratioPenalty: 0 at a ratio of 30, saturated at 100 below 5.
	ratioCeiling = 30.0
	ratioPenalty = 4.0
)

// Grade thresholds are inclusive lower bounds.
const (
	gradeAThreshold = 85
	gradeBThreshold = 75
	gradeCThreshold = 65
	gradeDThreshold = 55

	lowRiskThreshold    = 75
	mediumRiskThreshold = 60
)

// Dataset bundles the three entity collections the engine reads.
type Dataset struct {
	Students []models.Student
	Teachers []models.Teacher
	Courses  []models.Course
}

// GradeFor maps a 0-100 score to a letter grade.
func GradeFor(score int) models.Grade {
	switch {
	case score >= gradeAThreshold:
		return models.GradeA
	case score >= gradeBThreshold:
		return models.GradeB
	case score >= gradeCThreshold:
		return models.GradeC
	case score >= gradeDThreshold:
		return models.GradeD
	default:
		return models.GradeF
	}
}

// RiskLevelFor maps a 0-100 score to a risk level.
func RiskLevelFor(score int) models.RiskLevel {
	switch {
	case score >= lowRiskThreshold:
		return models.RiskLow
	case score >= mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// accumulator collects the running sums for one scope (the institution or a department).
type accumulator struct {
	students       int
	activeStudents int
	gpaSum         float64

	teachers  int
	rated     int
	ratingSum float64

	courses        int
	utilizationSum float64
}

func (a *accumulator) addStudent(s models.Student) {
	a.students++
	a.gpaSum += finite(s.GPA)
	if s.Status == models.StudentStatusActive {
		a.activeStudents++
	}
}

func (a *accumulator) addTeacher(t models.Teacher) {
	a.teachers++
	if t.OverallRating != nil {
		a.rated++
		a.ratingSum += finite(*t.OverallRating)
	}
}

func (a *accumulator) addCourse(c models.Course) {
	a.courses++
	if c.MaxCapacity > 0 {
		a.utilizationSum += float64(c.EnrolledCount()) / float64(c.MaxCapacity) * 100
	}
}

// rates holds unrounded averages of one scope.
type rates struct {
	avgGPA      float64
	avgRating   float64
	ratio       float64
	retention   float64
	utilization float64
}

func (a *accumulator) rates() rates {
	return rates{
		avgGPA:      safeDiv(a.gpaSum, float64(a.students)),
		avgRating:   safeDiv(a.ratingSum, float64(a.rated)),
		ratio:       safeDiv(float64(a.students), float64(a.teachers)),
		retention:   safeDiv(float64(a.activeStudents), float64(a.students)) * 100,
		utilization: safeDiv(a.utilizationSum, float64(a.courses)),
	}
}

// subScores holds the four rounded 0-100 component scores and their rounded mean.
type subScores struct {
	academic     int
	teaching     int
	operational  int
	satisfaction int
	overall      int
}

func (r rates) scores() subScores {
	s := subScores{
		academic:     toScore(r.avgGPA / maxGPA * 100),
		teaching:     toScore((ratioCeiling - r.ratio) * ratioPenalty),
		operational:  toScore(r.utilization),
		satisfaction: toScore(r.retention),
	}
	s.overall = int(math.Round(float64(s.academic+s.teaching+s.operational+s.satisfaction) / 4))
	return s
}

func toScore(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
