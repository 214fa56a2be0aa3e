package quality

import (
	"sort"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

// departmentResult pairs the rounded output row with the averages it was
// rounded from. Risk rules read raw.
type departmentResult struct {
	quality models.DepartmentQuality
	raw     rates
}

// ComputeDepartmentQuality returns one entry per department that has at least
// one student, sorted by quality score (highest first, ties by name).
// Department names are compared verbatim; "CS" and "cs" are distinct.
// Teachers and courses of departments without students are ignored.
// A department without courses reports a utilization of 0.
func ComputeDepartmentQuality(students []models.Student, teachers []models.Teacher, courses []models.Course) []models.DepartmentQuality {
	results := computeDepartments(students, teachers, courses)
	out := make([]models.DepartmentQuality, len(results))
	for i, r := range results {
		out[i] = r.quality
	}
	return out
}

func computeDepartments(students []models.Student, teachers []models.Teacher, courses []models.Course) []departmentResult {
	groups := make(map[string]*accumulator)
	for _, s := range students {
		acc, ok := groups[s.Department]
		if !ok {
			acc = &accumulator{}
			groups[s.Department] = acc
		}
		acc.addStudent(s)
	}
	for _, t := range teachers {
		if acc, ok := groups[t.Department]; ok {
			acc.addTeacher(t)
		}
	}
	for _, c := range courses {
		if acc, ok := groups[c.Department]; ok {
			acc.addCourse(c)
		}
	}

	out := make([]departmentResult, 0, len(groups))
	for name, acc := range groups {
		r := acc.rates()
		sc := r.scores()
		out = append(out, departmentResult{raw: r, quality: models.DepartmentQuality{
			Department:     name,
			StudentCount:   acc.students,
			ActiveStudents: acc.activeStudents,
			TeacherCount:   acc.teachers,
			CourseCount:    acc.courses,

			AvgGPA:              roundTo(r.avgGPA, 2),
			AvgTeacherRating:    roundTo(r.avgRating, 2),
			StudentTeacherRatio: roundTo(r.ratio, 1),
			RetentionRate:       roundTo(r.retention, 1),
			UtilizationRate:     roundTo(r.utilization, 1),

			AcademicScore:    sc.academic,
			TeachingScore:    sc.teaching,
			RetentionScore:   sc.satisfaction,
			UtilizationScore: sc.operational,

			QualityScore: sc.overall,
			QualityGrade: GradeFor(sc.overall),
			RiskLevel:    RiskLevelFor(sc.overall),
		}})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].quality, out[j].quality
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}
		return a.Department < b.Department
	})
	return out
}
